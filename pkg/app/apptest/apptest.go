// Package apptest builds catalogs over temporary directories for tests.
package apptest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/store"
)

// Now is the fixed clock every fixture starts on.
var Now = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local)

type Fixture struct {
	Catalog *app.Service
	Prefs   *store.Preferences
	Backend *store.Backend
	Local   string
}

// New returns a loaded catalog. With cloud set, a cloud container exists
// and its root resolves.
func New(t testing.TB, cloud bool) *Fixture {
	t.Helper()
	container := filepath.Join(t.TempDir(), "absent")
	if cloud {
		container = t.TempDir()
	}
	cfg := store.Settings{
		Local:       t.TempDir(),
		Container:   container,
		Subdir:      "Freewrite",
		Concurrency: 2,
	}
	prefs, err := store.OpenPreferences(filepath.Join(t.TempDir(), "prefs"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	prefs.DefaultScheme = func() string { return store.SchemeLight }

	b, err := store.NewBackend(cfg, nil, prefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	_ = b.Resolve()

	catalog := app.New(app.Options{
		Store:              store.New(b, nil),
		MigrateConcurrency: 2,
		Log:                zerolog.Nop(),
		Now:                func() time.Time { return Now },
	})
	if _, err := catalog.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return &Fixture{Catalog: catalog, Prefs: prefs, Backend: b, Local: cfg.Local}
}

// Write starts a new entry holding content and returns its file name.
func (f *Fixture) Write(t testing.TB, content string) string {
	t.Helper()
	ctx := context.Background()
	e, err := f.Catalog.NewEntry(ctx)
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if err := f.Catalog.Save(ctx, e.Filename, content); err != nil {
		t.Fatalf("save: %v", err)
	}
	return e.Filename
}
