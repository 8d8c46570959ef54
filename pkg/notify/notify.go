// Package notify shows desktop notifications through whichever notification
// tool is installed.
package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"niri-workspaces/pkg/core"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Info {
		return "INFO"
	}
	return "ERROR"
}

// NotifyService handles system notifications
type NotifyService struct {
	log           core.Logger
	notifyCommand string

	lookPath func(string) (string, error)
	run      func(*exec.Cmd) error
	stderr   io.Writer
	terminal func() bool
}

// NewNotifyService creates a notification service. notifyCommand, when set,
// is tried first and receives the type and the message as arguments.
func NewNotifyService(notifyCommand string, log core.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
		lookPath:      exec.LookPath,
		run:           (*exec.Cmd).Run,
		stderr:        os.Stderr,
		terminal:      isRunningInTerminal,
	}
}

// Show displays a notification: the configured command first, then the
// system notification tools, then stderr when it is a terminal.
func (n *NotifyService) Show(title, message string, nType NotificationType) error {
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	if err := n.trySystemNotification(title, message, nType); err == nil {
		return nil
	}

	if n.terminal() {
		return n.printToTerminal(title, message, nType)
	}

	return fmt.Errorf("no way to show notification %q", title)
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "command", n.notifyCommand, "type", nType.String())
	cmd := exec.Command("sh", "-c", n.notifyCommand+` "$1" "$2"`, "sh", nType.String(), message)
	return n.run(cmd)
}
