package add

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

// Add writes text into an entry. With an empty Ref it starts a new entry.
// A nil Text opens Editor on the current content.
type Add struct {
	Catalog *app.Service
	Ref     string
	Text    *string
	Append  bool
	Editor  string
	JSON    bool

	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Catalog == nil {
		return errors.New("can not add, no catalog")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	var (
		e   entry.Entry
		err error
	)
	if n.Ref == "" {
		e, err = n.Catalog.NewEntry(ctx)
	} else {
		e, err = n.Catalog.Find(n.Ref)
	}
	if err != nil {
		return err
	}

	current, err := n.Catalog.Load(ctx, e.Filename)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	var text string
	if n.Text != nil {
		text = *n.Text
		if n.Append {
			text = current + text
		}
	} else {
		text, err = Edit(n.Editor, current)
		if err != nil {
			return err
		}
	}

	if text != current || n.Ref == "" {
		if err := n.Catalog.Save(ctx, e.Filename, text); err != nil {
			return err
		}
	}

	e = e.WithContent(text)
	if n.JSON {
		return json.NewEncoder(out).Encode(e)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Entries(e.ID, e)
	return nil
}

// EditorCommand builds the command that opens path in editor. An editor
// made only of whitespace, or none at all, falls back to $VISUAL, $EDITOR and
// then vi.
func EditorCommand(editor, path string) *exec.Cmd {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = strings.Fields(os.Getenv("VISUAL"))
	}
	if len(fields) == 0 {
		fields = strings.Fields(os.Getenv("EDITOR"))
	}
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	return exec.Command(fields[0], append(fields[1:], path)...)
}

// Edit opens editor on a scratch copy of content and returns what was saved.
func Edit(editor, content string) (string, error) {
	f, err := os.CreateTemp("", "freewrite-*"+entry.Extension)
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	_, werr := f.WriteString(content)
	if err := errors.Join(werr, f.Close()); err != nil {
		return "", err
	}

	c := EditorCommand(editor, f.Name())
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
