package cli

import (
	"github.com/spf13/cobra"

	"niri-workspaces/pkg/config"
)

// IconTable is the effective icon configuration as printed by "icons".
type IconTable struct {
	Default string            `json:"window-icon-default" yaml:"window-icon-default"`
	Formats config.Formats    `json:"window-icon-format"  yaml:"window-icon-format"`
	Icons   map[string]string `json:"window-icons"        yaml:"window-icons"`
}

func newIconsCommand(s *rootState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Print the effective icon table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStructured(cmd, format, IconTable{
				Default: s.cfg.IconDefault,
				Formats: s.cfg.Formats,
				Icons:   s.cfg.Icons,
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
