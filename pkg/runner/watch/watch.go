package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/store"
)

// Watch follows the cloud root and prints a line each time the catalog
// changes, until ctx is done.
type Watch struct {
	Catalog *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not watch, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}

	root := n.Catalog.SyncState().CloudRoot
	if root == "" {
		return fmt.Errorf("nothing to watch: %w", store.ErrCloudUnavailable)
	}

	events := n.Catalog.Subscribe(ctx)
	if err := n.Catalog.StartWatching(ctx); err != nil {
		return err
	}
	defer func() { _ = n.Catalog.StopWatching() }()

	_, _ = fmt.Fprintf(out, "watching %s\n", root)
	faint := color.New(color.Faint)
	for ev := range events {
		if ev.Type != app.EventEntriesChanged {
			continue
		}
		_, _ = faint.Fprintf(out, "%s ", now().Format("15:04:05"))
		_, _ = fmt.Fprintf(out, "%d entries\n", len(n.Catalog.Entries()))
	}
	return nil
}
