package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/store"
)

// journal is everything a command needs, loaded from config.
type journal struct {
	Config  store.Config
	Prefs   *store.Preferences
	Backend *store.Backend
	Catalog *app.Service
}

// openJournal loads config and preferences, resolves storage and fills the
// catalog. Filling applies the creation policy, so it may write the welcome
// entry or today's empty entry. A missing cloud root is not an error: it is
// recorded as the last sync error when the user asked for cloud sync.
func openJournal(ctx context.Context) (*journal, error) {
	return loadJournal(ctx, true)
}

// peekJournal is openJournal for commands that only read: the catalog is
// scanned and nothing is written.
func peekJournal(ctx context.Context) (*journal, error) {
	return loadJournal(ctx, false)
}

func loadJournal(ctx context.Context, policy bool) (*journal, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	prefs, err := store.OpenPreferences(cfg.PrefsPath())
	if err != nil {
		return nil, err
	}
	backend, err := store.NewBackend(cfg, nil, prefs, log.Logger)
	if err != nil {
		return nil, err
	}
	wantCloud := prefs.UseCloudSync()
	resolveErr := backend.Resolve()

	watcher := store.NewChangeWatcher(&store.FSNotifySource{Log: log.Logger}, cfg.WatchThrottle(), cfg.WatchDelay())
	catalog := app.New(app.Options{
		Store:              store.New(backend, nil),
		Watcher:            watcher,
		MigrateConcurrency: cfg.MigrateConcurrency(),
		Log:                log.Logger,
	})
	if resolveErr != nil && wantCloud {
		catalog.RecordSyncError(resolveErr)
	}
	fill := catalog.Reload
	if !policy {
		fill = catalog.Scan
	}
	if _, err := fill(ctx); err != nil {
		return nil, err
	}

	return &journal{
		Config:  cfg,
		Prefs:   prefs,
		Backend: backend,
		Catalog: catalog,
	}, nil
}
