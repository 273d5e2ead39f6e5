package cloudsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

// Sync prints the sync state, or switches storage when Enable is set.
type Sync struct {
	Catalog *app.Service
	Enable  *bool
	JSON    bool

	Out io.Writer
}

type result struct {
	State     app.SyncState `json:"state"`
	Succeeded []string      `json:"succeeded,omitempty"`
	Failed    []string      `json:"failed,omitempty"`
	Skipped   []string      `json:"skipped,omitempty"`
}

func (n *Sync) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not sync, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	var (
		res    result
		migErr error
	)
	if n.Enable != nil && n.Catalog.SyncState().UsingCloud != *n.Enable {
		report, err := n.Catalog.SetCloudSync(ctx, *n.Enable)
		if err != nil && !errors.Is(err, store.ErrPartialMigration) {
			return err
		}
		migErr = err
		res.Succeeded, res.Failed, res.Skipped = report.Succeeded, report.Failed, report.Skipped
	}
	res.State = n.Catalog.SyncState()

	if n.JSON {
		if err := json.NewEncoder(out).Encode(res); err != nil {
			return err
		}
		return migErr
	}

	pp := printers.PrettyPrint{Out: out}
	pp.SyncState(res.State)
	if n.Enable != nil {
		_, _ = fmt.Fprintf(out, "moved %d, skipped %d, failed %d\n", len(res.Succeeded), len(res.Skipped), len(res.Failed))
		for _, f := range res.Failed {
			_, _ = color.New(color.FgRed).Fprintf(out, "  %s\n", f)
		}
	}
	return migErr
}
