package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/chat"
	"tableflip.dev/freewrite/pkg/runner/export"
)

func addChat(topLevel *cobra.Command) {
	po := &options.ProviderOptions{}
	cmd := &cobra.Command{
		Use:   "chat [entry]",
		Short: "Open a chat assistant with an entry as the first message.",
		Long: `Open a chat assistant in the browser, seeded with the entry and a prompt
asking it to reflect on what you wrote. Defaults to the current entry.
Short entries and the welcome entry are refused.`,
		Example: `
freewrite chat
freewrite chat 3f2a --provider chatgpt
freewrite chat --print
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			provider, err := po.Parse()
			if err != nil {
				return err
			}
			j, err := peekJournal(cmd.Context())
			if err != nil {
				return err
			}
			c := chat.Chat{
				Catalog:   j.Catalog,
				Provider:  provider,
				PrintOnly: po.PrintOnly,
				Out:       cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				c.Ref = args[0]
			}
			return c.Do(cmd.Context())
		},
	}

	options.AddProviderArgs(cmd, po)
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <entry>",
		Short: "Save an entry as a titled markdown file.",
		Example: `
freewrite export 3f2a
freewrite export 3f2a --dir ~/Desktop
freewrite export 3f2a --dir - | pandoc -o entry.pdf
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := peekJournal(cmd.Context())
			if err != nil {
				return err
			}
			x := export.Export{Catalog: j.Catalog, Ref: args[0], Dir: dir, Out: cmd.OutOrStdout()}
			return x.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", `Directory to write into, or "-" for stdout.`)
	topLevel.AddCommand(cmd)
}
