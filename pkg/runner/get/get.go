package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/timeutil"
)

// Get lists the catalog, or prints one entry when Ref is set.
type Get struct {
	Catalog *app.Service
	Ref     string
	Limit   int
	JSON    bool

	// Since keeps only entries created within this window of Now.
	Since time.Duration
	Now   func() time.Time

	Out io.Writer
}

type shown struct {
	entry.Entry
	Content string `json:"content"`
}

func (n *Get) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not get, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Ref != "" {
		e, err := n.Catalog.Find(n.Ref)
		if err != nil {
			return err
		}
		content, err := n.Catalog.Load(ctx, e.Filename)
		if err != nil {
			return err
		}
		if n.JSON {
			return json.NewEncoder(out).Encode(shown{Entry: e.WithContent(content), Content: content})
		}
		_, _ = color.New(color.Bold).Fprintln(out, entry.Title(content, e.Date))
		_, _ = color.New(color.Faint).Fprintln(out, e.Filename)
		_, _ = io.WriteString(out, "\n"+content+"\n")
		return nil
	}

	all := n.Catalog.Entries()
	if n.Since > 0 {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		cutoff := timeutil.Cutoff(now(), n.Since)
		recent := all[:0:0]
		for _, e := range all {
			if !e.Created.Before(cutoff) {
				recent = append(recent, e)
			}
		}
		all = recent
	}
	if n.Limit > 0 && len(all) > n.Limit {
		all = all[:n.Limit]
	}
	if n.JSON {
		if all == nil {
			all = []entry.Entry{}
		}
		return json.NewEncoder(out).Encode(all)
	}

	selected, _ := n.Catalog.Selected()
	pp := printers.PrettyPrint{Out: out}
	pp.Entries(selected.ID, all...)
	return nil
}
