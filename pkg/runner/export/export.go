package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
)

// Export writes an entry as a titled markdown file into Dir. A Dir of "-"
// writes to Out.
type Export struct {
	Catalog *app.Service
	Ref     string
	Dir     string

	Out io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not export, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	x, err := n.Catalog.Export(ctx, n.Ref)
	if err != nil {
		return err
	}
	if n.Dir == "-" {
		_, err := io.WriteString(out, x.Content)
		return err
	}

	dir := n.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, x.Filename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(x.Content), 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "exported %q to %s\n", x.Title, path)
	return nil
}
