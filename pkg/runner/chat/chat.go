package chat

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/handoff"
)

// Chat hands an entry to a chat assistant in the browser. With PrintOnly
// the URL is printed instead.
type Chat struct {
	Catalog   *app.Service
	Ref       string
	Provider  handoff.Provider
	PrintOnly bool
	Open      handoff.Opener

	Out io.Writer
}

func (n *Chat) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not chat, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	ref := n.Ref
	if ref == "" {
		sel, ok := n.Catalog.Selected()
		if !ok {
			return app.ErrEntryNotFound
		}
		ref = sel.Filename
	}
	e, err := n.Catalog.Find(ref)
	if err != nil {
		return err
	}
	text, err := n.Catalog.Load(ctx, e.Filename)
	if err != nil {
		return err
	}

	if n.PrintOnly {
		u, err := handoff.URL(n.Provider, text)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, u)
		return nil
	}
	if _, err := handoff.Open(n.Provider, text, n.Open); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "opened %s with %s\n", n.Provider, e.Filename)
	return nil
}
