package notify

import (
	"fmt"
	"os/exec"
)

type notificationTool struct {
	name         string
	buildCommand func(tool string, title string, message string, nType NotificationType) *exec.Cmd
}

var notificationTools = []notificationTool{
	{
		name: "dunstify",
		buildCommand: func(tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
			}
			return exec.Command(tool, "-a", "niri-workspaces", "-u", urgency, "-t", "5000", title, message)
		},
	},
	{
		name: "notify-send",
		buildCommand: func(tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
			}
			return exec.Command(tool, "-a", "niri-workspaces", "-u", urgency, title, message)
		},
	},
	{
		name: "zenity",
		buildCommand: func(tool string, title string, message string, nType NotificationType) *exec.Cmd {
			flag := "--info"
			if nType == Error {
				flag = "--error"
			}
			return exec.Command(tool, flag, "--text", message, "--title", title)
		},
	},
}

func (n *NotifyService) trySystemNotification(title string, message string, nType NotificationType) error {
	for _, tool := range notificationTools {
		path, err := n.lookPath(tool.name)
		if err != nil {
			continue
		}
		cmd := tool.buildCommand(path, title, message, nType)
		if err := n.run(cmd); err == nil {
			n.log.Debug("Notification sent successfully",
				"tool", tool.name,
				"type", nType.String())
			return nil
		}
	}
	return fmt.Errorf("no notification tools available")
}
