package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type testConfig struct {
	local     string
	container string
}

func (c testConfig) LocalPath() string { return c.local }
func (c testConfig) CloudContainer() string { return c.container }
func (c testConfig) CloudSubdir() string { return "Documents/Freewrite" }
func (c testConfig) PrefsPath() string { return "" }
func (c testConfig) MigrateConcurrency() int { return 2 }
func (c testConfig) WatchThrottle() time.Duration { return time.Second }
func (c testConfig) WatchDelay() time.Duration { return 10 * time.Millisecond }

func openPrefs(t *testing.T) *Preferences {
	t.Helper()
	p, err := OpenPreferences(filepath.Join(t.TempDir(), "prefs"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	p.DefaultScheme = func() string { return SchemeLight }
	return p
}

func TestBackendDefaultsToLocal(t *testing.T) {
	cfg := testConfig{local: filepath.Join(t.TempDir(), "local"), container: t.TempDir()}
	b, err := NewBackend(cfg, nil, openPrefs(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	if err := b.Resolve(); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !b.CloudAvailable() {
		t.Fatalf("expected cloud available")
	}
	if got := b.Active(); got.Kind != Local || got.Path != cfg.local {
		t.Fatalf("expected local root, got %+v", got)
	}
	cloud, ok := b.CloudRoot()
	if !ok || cloud.Path != filepath.Join(cfg.container, "Documents/Freewrite") {
		t.Fatalf("unexpected cloud root %+v", cloud)
	}
}

func TestBackendHonoursPreference(t *testing.T) {
	cfg := testConfig{local: t.TempDir(), container: t.TempDir()}
	prefs := openPrefs(t)
	if err := prefs.SetUseCloudSync(true); err != nil {
		t.Fatal(err)
	}

	b, err := NewBackend(cfg, nil, prefs, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Resolve(); err != nil {
		t.Fatal(err)
	}
	if got := b.Active(); got.Kind != Cloud {
		t.Fatalf("expected cloud root, got %+v", got)
	}

	if err := b.SetActive(Local); err != nil {
		t.Fatal(err)
	}
	if prefs.UseCloudSync() {
		t.Fatalf("expected preference persisted as false")
	}
}

func TestBackendFallsBackWhenCloudMissing(t *testing.T) {
	cfg := testConfig{local: t.TempDir(), container: filepath.Join(t.TempDir(), "absent")}
	prefs := openPrefs(t)
	if err := prefs.SetUseCloudSync(true); err != nil {
		t.Fatal(err)
	}

	b, err := NewBackend(cfg, nil, prefs, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Resolve(); !errors.Is(err, ErrCloudUnavailable) {
		t.Fatalf("expected ErrCloudUnavailable, got %v", err)
	}
	if got := b.Active(); got.Kind != Local {
		t.Fatalf("expected fallback to local, got %+v", got)
	}
	if prefs.UseCloudSync() {
		t.Fatalf("expected preference forced off")
	}
	if err := b.SetActive(Cloud); !errors.Is(err, ErrCloudUnavailable) {
		t.Fatalf("expected ErrCloudUnavailable, got %v", err)
	}
}

func TestStoreFollowsActiveRoot(t *testing.T) {
	cfg := testConfig{local: t.TempDir(), container: t.TempDir()}
	b, err := NewBackend(cfg, nil, openPrefs(t), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Resolve(); err != nil {
		t.Fatal(err)
	}
	s := New(b, nil)

	local := s.Active()
	if local.Root().Kind != Local || local.coord != nil {
		t.Fatalf("expected uncoordinated local dir, got %+v", local.Root())
	}
	if err := b.SetActive(Cloud); err != nil {
		t.Fatal(err)
	}
	cloud := s.Active()
	if cloud.Root().Kind != Cloud || cloud.coord == nil {
		t.Fatalf("expected coordinated cloud dir, got %+v", cloud.Root())
	}
	if s.Active() != cloud {
		t.Fatalf("expected dirs to be reused")
	}
}
