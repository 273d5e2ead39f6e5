package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	var watch bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
freewrite ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			i := ui.UI{Catalog: j.Catalog, Prefs: j.Prefs, Watch: watch}
			return i.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload when entries change in the cloud root.")
	topLevel.AddCommand(cmd)
}
