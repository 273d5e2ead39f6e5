package teaui

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := store.Settings{
		Local:       t.TempDir(),
		Container:   filepath.Join(t.TempDir(), "absent"),
		Subdir:      "Freewrite",
		Concurrency: 1,
	}
	prefs, err := store.OpenPreferences(filepath.Join(t.TempDir(), "prefs"))
	if err != nil {
		t.Fatal(err)
	}
	prefs.DefaultScheme = func() string { return store.SchemeLight }
	b, err := store.NewBackend(cfg, nil, prefs, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Resolve()

	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local)
	svc := app.New(app.Options{
		Store: store.New(b, nil),
		Log:   zerolog.Nop(),
		Now:   func() time.Time { return now },
	})
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := New(ctx, svc, prefs)
	m.termWidth = 100
	m.termHeight = 30
	m.applySizes()
	return m
}

// press feeds a key through Update and returns the updated model.
func press(t *testing.T, m Model, key tea.KeyPressMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	return next.(Model)
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(snapshot(m.svc))
	return next.(Model)
}

func TestLoadShowsWelcomeEntry(t *testing.T) {
	m := load(t, newTestModel(t))

	if got := len(m.entList.Items()); got != 1 {
		t.Fatalf("expected welcome entry, got %d items", got)
	}
	if !entry.IsWelcome(m.text) {
		t.Fatalf("expected welcome text in preview, got %q", m.text)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "[NORMAL]") {
		t.Fatalf("expected normal mode in status line; view=%q", view)
	}
	if !strings.Contains(view, entry.WelcomeMarker) {
		t.Fatalf("expected welcome text in view; view=%q", view)
	}
}

func TestNavigationSelectsEntry(t *testing.T) {
	ctx := context.Background()
	m := newTestModel(t)
	e, err := m.svc.NewEntry(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.svc.Save(ctx, e.Filename, "morning pages"); err != nil {
		t.Fatal(err)
	}
	m = load(t, m)
	if m.text != "morning pages" {
		t.Fatalf("expected new entry in preview, got %q", m.text)
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	sel, ok := m.svc.Selected()
	if !ok || sel.ID == e.ID {
		t.Fatalf("expected selection to move off %s", e.ID)
	}
	if !entry.IsWelcome(m.text) {
		t.Fatalf("expected welcome text after moving down, got %q", m.text)
	}

	m = press(t, m, tea.KeyPressMsg{Text: "k", Code: 'k'})
	if sel, _ := m.svc.Selected(); sel.ID != e.ID {
		t.Fatalf("expected selection back on %s, got %s", e.ID, sel.ID)
	}
}

func TestDoubleDDeletesSelectedEntry(t *testing.T) {
	ctx := context.Background()
	m := newTestModel(t)
	if _, err := m.svc.NewEntry(ctx); err != nil {
		t.Fatal(err)
	}
	m = load(t, m)
	before := len(m.svc.Entries())

	m = press(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	if len(m.svc.Entries()) != before {
		t.Fatalf("single d should not delete")
	}
	m = press(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	if got := len(m.svc.Entries()); got != before-1 {
		t.Fatalf("expected %d entries after dd, got %d", before-1, got)
	}
	if m.status != "Deleted" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCommandMode(t *testing.T) {
	m := load(t, newTestModel(t))

	m = press(t, m, tea.KeyPressMsg{Text: ":", Code: ':'})
	if m.mode != modeCommand {
		t.Fatalf("expected command mode")
	}
	m = press(t, m, tea.KeyPressMsg{Text: "x", Code: 'x'})
	if m.input.Value() != "x" {
		t.Fatalf("expected typed command, got %q", m.input.Value())
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after enter")
	}
	if !strings.Contains(m.status, "Unknown command: x") {
		t.Fatalf("unexpected status %q", m.status)
	}

	cmd := m.runCommand("q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestChatRequiresEnoughText(t *testing.T) {
	ctx := context.Background()
	m := newTestModel(t)
	var opened string
	m.open = func(url string) error {
		opened = url
		return nil
	}

	e, err := m.svc.NewEntry(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.svc.Save(ctx, e.Filename, "too short"); err != nil {
		t.Fatal(err)
	}
	m = load(t, m)
	m = press(t, m, tea.KeyPressMsg{Text: "c", Code: 'c'})
	if opened != "" || !strings.Contains(m.status, "Write at least") {
		t.Fatalf("expected short entry to be refused; status=%q", m.status)
	}

	if err := m.svc.Save(ctx, e.Filename, strings.Repeat("a long thought ", 40)); err != nil {
		t.Fatal(err)
	}
	m = load(t, m)
	m = press(t, m, tea.KeyPressMsg{Text: "c", Code: 'c'})
	if !strings.HasPrefix(opened, "https://claude.ai/new?q=") {
		t.Fatalf("expected claude link, got %q", opened)
	}
}

func TestThemeToggle(t *testing.T) {
	m := load(t, newTestModel(t))
	if got := m.prefs.ColorScheme(); got != store.SchemeLight {
		t.Fatalf("expected light default, got %s", got)
	}
	m = press(t, m, tea.KeyPressMsg{Text: "t", Code: 't'})
	if got := m.prefs.ColorScheme(); got != store.SchemeDark {
		t.Fatalf("expected dark after toggle, got %s", got)
	}
	if m.status != "Theme: dark" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHelpMode(t *testing.T) {
	m := load(t, newTestModel(t))
	m = press(t, m, tea.KeyPressMsg{Text: "?", Code: '?'})
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "dd delete") {
		t.Fatalf("expected key help in view; view=%q", view)
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after esc")
	}
}

func TestEditWithBlankEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	t.Setenv("TMPDIR", t.TempDir())
	m := load(t, newTestModel(t))
	m.editor = "   "

	if cmd := m.edit(); cmd == nil {
		t.Fatalf("expected an editor command; status=%q", m.status)
	}
}
