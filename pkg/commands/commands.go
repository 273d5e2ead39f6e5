package commands

import (
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/store"
)

var (
	output = &options.OutputOptions{}
	debug  bool
	config string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "freewrite",
		Short: base.Wrap80("Distraction-free journaling with optional cloud sync."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			if config != "" {
				_ = os.Setenv(store.ConfigPathEnv, config)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr.")
	cmd.PersistentFlags().StringVar(&config, "config", "",
		"Directory holding .freewrite.yaml. Overrides $"+store.ConfigPathEnv+".")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addNew(topLevel)
	addWrite(topLevel)
	addDelete(topLevel)
	addSync(topLevel)
	addWatch(topLevel)
	addChat(topLevel)
	addExport(topLevel)
	addPrefs(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
