package commands

import (
	"fmt"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/add"
	"tableflip.dev/freewrite/pkg/runner/get"
	"tableflip.dev/freewrite/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	var (
		limit int
		since string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List entries, newest first.",
		Example: `
freewrite list
freewrite list --limit 5 --json
freewrite list --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, err := timeutil.ParseWindow(since)
			if err != nil {
				return output.HandleError(err)
			}
			j, err := peekJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			g := get.Get{Catalog: j.Catalog, Limit: limit, Since: window, JSON: output.JSON}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many entries.")
	cmd.Flags().StringVar(&since, "since", "", `Only entries created within this window, like "3d" or "1w2d".`)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <entry>",
		Short: "Print an entry.",
		Long: base.Wrap80(`An entry is named by its id, a unique prefix of the id,
or its file name.`),
		Example: `
freewrite show 3f2a
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := peekJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			g := get.Get{Catalog: j.Catalog, Ref: args[0], JSON: output.JSON}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNew(topLevel *cobra.Command) {
	eo := &options.EditorOptions{}
	cmd := &cobra.Command{
		Use:   "new [text]",
		Short: "Start a new entry.",
		Long: base.Wrap80(`Start a new entry. Text comes from the arguments, or from
stdin when it is piped; otherwise an editor is opened.`),
		Example: `
freewrite new
freewrite new "first thought of the day"
pbpaste | freewrite new
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := eo.Text(args, os.Stdin)
			if err != nil {
				return output.HandleError(err)
			}
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			a := add.Add{Catalog: j.Catalog, Text: text, Editor: eo.Editor, JSON: output.JSON}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddEditorArgs(cmd, eo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWrite(topLevel *cobra.Command) {
	eo := &options.EditorOptions{}
	cmd := &cobra.Command{
		Use:   "write <entry> [text]",
		Short: "Replace or append to an entry.",
		Example: `
freewrite write 3f2a "a new ending"
freewrite write 3f2a --append < notes.txt
freewrite write 3f2a
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := eo.Text(args[1:], os.Stdin)
			if err != nil {
				return output.HandleError(err)
			}
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			a := add.Add{
				Catalog: j.Catalog,
				Ref:     args[0],
				Text:    text,
				Append:  eo.Append,
				Editor:  eo.Editor,
				JSON:    output.JSON,
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddEditorArgs(cmd, eo)
	options.AddAppendArg(cmd, eo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <entry>",
		Aliases:           []string{"rm"},
		Short:             "Delete an entry file.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			e, err := j.Catalog.Find(args[0])
			if err != nil {
				return err
			}
			if err := j.Catalog.Delete(cmd.Context(), e.Filename); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", e.Filename)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
