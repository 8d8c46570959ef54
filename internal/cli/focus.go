package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"niri-workspaces/internal/engine"
)

func newFocusCommand(s *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "focus <workspace-id>",
		Short: "Focus a workspace by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid workspace id %q: %w", args[0], err)
			}

			session, err := s.session()
			if err != nil {
				return err
			}
			if !engine.NewActivator(session.DialFocuser, s.log).Focus(id) {
				return fmt.Errorf("failed to focus workspace %d", id)
			}
			return nil
		},
	}
}
