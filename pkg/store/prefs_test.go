package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPreferencesDefaults(t *testing.T) {
	p := openPrefs(t)

	if p.UseCloudSync() {
		t.Fatalf("expected cloud sync off by default")
	}
	if got := p.ColorScheme(); got != SchemeLight {
		t.Fatalf("expected light scheme, got %q", got)
	}
	if got := p.SelectedFont(); got != DefaultFont {
		t.Fatalf("expected default font, got %q", got)
	}
	if got := p.FontSize(); got != DefaultFontSize {
		t.Fatalf("expected default size, got %d", got)
	}
}

func TestPreferencesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")
	p, err := OpenPreferences(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetUseCloudSync(true); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ToggleTheme(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPreferences(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.UseCloudSync() {
		t.Fatalf("expected cloud sync to persist")
	}
	if v, ok := reopened.Get(PrefColorScheme); !ok || (v != SchemeLight && v != SchemeDark) {
		t.Fatalf("expected persisted scheme, got %q", v)
	}
	if _, err := os.Stat(filepath.Join(path, PrefUseCloudSync)); err != nil {
		t.Fatalf("expected one file per key: %v", err)
	}
}

func TestPreferencesCycleFontSize(t *testing.T) {
	p := openPrefs(t)

	want := []int{20, 22, 24, 26, 16, 18}
	for _, w := range want {
		got, err := p.CycleFontSize()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("expected %d, got %d", w, got)
		}
	}

	// Sizes outside the cycle are left alone.
	if err := p.Set(PrefFontSize, "17"); err != nil {
		t.Fatal(err)
	}
	if got, _ := p.CycleFontSize(); got != 17 {
		t.Fatalf("expected 17 to stay put, got %d", got)
	}
}

func TestPreferencesToggleTheme(t *testing.T) {
	p := openPrefs(t)
	got, err := p.ToggleTheme()
	if err != nil {
		t.Fatal(err)
	}
	if got != SchemeDark || p.ColorScheme() != SchemeDark {
		t.Fatalf("expected dark, got %q", got)
	}
	if got, _ := p.ToggleTheme(); got != SchemeLight {
		t.Fatalf("expected light, got %q", got)
	}
	if err := p.Unset(PrefColorScheme); err != nil {
		t.Fatal(err)
	}
	if err := p.Unset(PrefColorScheme); err != nil {
		t.Fatalf("expected unset of missing key to succeed: %v", err)
	}
}
