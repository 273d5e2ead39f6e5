package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/handoff"
)

// ProviderOptions picks the chat assistant.
type ProviderOptions struct {
	Provider  string
	PrintOnly bool
}

func AddProviderArgs(cmd *cobra.Command, o *ProviderOptions) {
	names := make([]string, 0, len(handoff.Providers))
	for _, p := range handoff.Providers {
		names = append(names, string(p))
	}
	cmd.Flags().StringVarP(&o.Provider, "provider", "p", string(handoff.Claude),
		"Chat assistant: "+strings.Join(names, " or ")+".")
	cmd.Flags().BoolVar(&o.PrintOnly, "print", false,
		"Print the link instead of opening a browser.")
	_ = cmd.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *ProviderOptions) Parse() (handoff.Provider, error) {
	return handoff.ParseProvider(o.Provider)
}
