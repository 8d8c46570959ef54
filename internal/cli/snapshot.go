package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"niri-workspaces/internal/workspaces"
)

func newSnapshotCommand(s *rootState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current workspaces once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
			}

			session, err := s.session()
			if err != nil {
				return err
			}
			conn, err := session.Dial()
			if err != nil {
				return err
			}
			defer conn.Close()

			ws, err := conn.Workspaces()
			if err != nil {
				return fmt.Errorf("failed to query workspaces: %w", err)
			}
			windows, err := conn.Windows()
			if err != nil {
				return fmt.Errorf("failed to query windows: %w", err)
			}
			views := workspaces.Aggregate(&s.cfg, ws, windows, s.log).Sorted()

			return printStructured(cmd, format, views)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func printStructured(cmd *cobra.Command, format string, v interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return writeLine(cmd.OutOrStdout(), data)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
}
