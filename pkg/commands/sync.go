package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/cloudsync"
	"tableflip.dev/freewrite/pkg/runner/watch"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync [status|on|off]",
		Short: "Show or change where entries are stored.",
		Long: `With no argument, print the sync state. "on" copies entries into the
cloud root and makes it active; "off" copies them back to the local root.
Files already present at the destination are left alone.`,
		Example: `
freewrite sync
freewrite sync on
freewrite sync off --json
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"status", "on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var enable *bool
			if len(args) == 1 && args[0] != "status" {
				on, err := parseOnOff(args[0])
				if err != nil {
					return output.HandleError(err)
				}
				enable = &on
			}
			load := peekJournal
			if enable != nil {
				load = openJournal
			}
			j, err := load(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := cloudsync.Sync{Catalog: j.Catalog, Enable: enable, JSON: output.JSON}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the cloud root and report entries arriving from elsewhere.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			w := watch.Watch{Catalog: j.Catalog, Out: cmd.OutOrStdout()}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
