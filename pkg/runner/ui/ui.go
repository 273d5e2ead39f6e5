package ui

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"tableflip.dev/freewrite/pkg/app"
	teaui "tableflip.dev/freewrite/pkg/runner/tea"
	"tableflip.dev/freewrite/pkg/store"
)

// UI runs the terminal writing interface.
type UI struct {
	Catalog *app.Service
	Prefs   *store.Preferences
	Watch   bool
}

func (d *UI) Do(ctx context.Context) error {
	if d.Catalog == nil {
		return errors.New("can not start ui, no catalog")
	}
	if d.Watch {
		if err := d.Catalog.StartWatching(ctx); err != nil {
			log.Warn().Err(err).Msg("not watching for external changes")
		} else {
			defer func() { _ = d.Catalog.StopWatching() }()
		}
	}
	return teaui.Run(ctx, d.Catalog, d.Prefs)
}
