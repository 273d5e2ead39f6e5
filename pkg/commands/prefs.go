package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

func addPrefs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "prefs [key] [value]",
		Short: "Show or change preferences.",
		Long: `With no arguments, print every preference. With a key, print it. With a
key and value, set it. Keys: ` + strings.Join(store.PrefKeys, ", ") + `.

Changing useCloudSync here does not move entries; use "freewrite sync".`,
		Example: `
freewrite prefs
freewrite prefs colorScheme dark
freewrite prefs fontSize 20
`,
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: store.PrefKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			prefs, err := store.OpenPreferences(cfg.PrefsPath())
			if err != nil {
				return output.HandleError(err)
			}

			if len(args) == 2 {
				if err := setPref(prefs, args[0], args[1]); err != nil {
					return output.HandleError(err)
				}
			}

			all := prefs.All()
			if len(args) >= 1 {
				v, ok := all[args[0]]
				if !ok {
					return output.HandleError(fmt.Errorf("unknown preference %q", args[0]))
				}
				all = map[string]string{args[0]: v}
			}

			if output.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), all)
			}
			pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.KeyValues("Preferences", all)
			return nil
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func setPref(p *store.Preferences, key, value string) error {
	switch key {
	case store.PrefUseCloudSync:
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		return p.SetUseCloudSync(on)
	case store.PrefColorScheme:
		if value != store.SchemeLight && value != store.SchemeDark {
			return fmt.Errorf("colorScheme must be %q or %q", store.SchemeLight, store.SchemeDark)
		}
	case store.PrefFontSize:
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("fontSize: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("fontSize must be positive")
		}
	case store.PrefSelectedFont:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("selectedFont can not be empty")
		}
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return p.Set(key, value)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "true", "yes", "1", "cloud":
		return true, nil
	case "off", "disable", "false", "no", "0", "local":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
