package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/store"
)

// Run launches the Bubble Tea UI and blocks until it exits. Catalog
// subscriptions end with the program.
func Run(ctx context.Context, svc *app.Service, prefs *store.Preferences) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(New(ctx, svc, prefs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
