package cli

import (
	"errors"
	"fmt"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"niri-workspaces/internal/app"
	"niri-workspaces/internal/engine"
	"niri-workspaces/internal/niri"
	"niri-workspaces/internal/waybar"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/notify"
)

const (
	outputWaybar = "waybar"
	outputWindow = "window"
)

func newRunCommand(s *rootState) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Keep the workspace view in sync and present it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputWaybar, outputWindow:
			default:
				return fmt.Errorf("unsupported output: %s (use waybar or window)", output)
			}

			session, err := s.session()
			if err != nil {
				s.log.Error("Failed to find niri session", err)
				return err
			}

			q := engine.NewQueue()
			eng := engine.New(s.cfg, session.Dial, q, s.log,
				engine.WithReconnect(engine.PolicyFromConfig(s.cfg.Reconnect)))
			failed := s.watch(eng.Start())

			if output == outputWindow {
				activator := engine.NewActivator(session.DialFocuser, s.log)
				a := fyneapp.New()
				bar := app.NewBar(a, activator.Activate, s.log)
				if s.debug {
					bar.EnableLogPanel(a, s.log.AddWriter)
				}
				bar.Run(q)
				activator.Wait()
				return syncError(failed)
			}

			printer := waybar.NewPrinter(cmd.OutOrStdout(), s.cfg.WorkspaceFormats, s.log)
			if err := printer.Drain(q); err != nil {
				return err
			}
			return <-failed
		},
	}
	cmd.Flags().StringVar(&output, "output", outputWaybar, "presentation: waybar or window")
	return cmd
}

// watch waits for the sync loop to end and sends a desktop notification for
// failures the user did not cause.
func (s *rootState) watch(done <-chan error) <-chan error {
	failed := make(chan error, 1)
	go func() {
		err := <-done
		if err != nil && !errors.Is(err, engine.ErrDeliveryClosed) && s.cfg.NotifyOnFailure {
			n := notify.NewNotifyService(s.cfg.NotifyCommand, s.log)
			if nerr := n.Show(config.AppName, failureMessage(err), notify.Error); nerr != nil {
				s.log.Warn("Failed to show failure notification", "error", nerr.Error())
			}
		}
		failed <- err
	}()
	return failed
}

// syncError returns the sync loop's error if it has already ended. A loop
// that stopped because the presentation went away is not an error.
func syncError(failed <-chan error) error {
	select {
	case err := <-failed:
		if errors.Is(err, engine.ErrDeliveryClosed) {
			return nil
		}
		return err
	default:
		return nil
	}
}

func failureMessage(err error) string {
	if niri.IsProtocolError(err) {
		return "niri sent an unexpected reply: " + err.Error()
	}
	return "Lost connection to niri: " + err.Error()
}
