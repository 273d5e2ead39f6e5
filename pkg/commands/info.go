package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where entries are stored.",
		Example: `
freewrite info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := peekJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:  j.Config,
				Prefs:   j.Prefs,
				Catalog: j.Catalog,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
