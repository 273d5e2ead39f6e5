package options

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// EditorOptions controls where entry text comes from.
type EditorOptions struct {
	Editor string
	Append bool
}

func AddEditorArgs(cmd *cobra.Command, o *EditorOptions) {
	cmd.Flags().StringVar(&o.Editor, "editor", "",
		"Editor to open when no text is given. Defaults to $VISUAL, then $EDITOR.")
}

func AddAppendArg(cmd *cobra.Command, o *EditorOptions) {
	cmd.Flags().BoolVarP(&o.Append, "append", "a", false,
		"Append to the entry instead of replacing it.")
}

// Text returns the entry text from args, or from stdin when it is piped.
// A nil result means the editor should be opened.
func (o *EditorOptions) Text(args []string, stdin *os.File) (*string, error) {
	if len(args) > 0 {
		s := strings.Join(args, " ")
		return &s, nil
	}
	if stdin == nil || isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
