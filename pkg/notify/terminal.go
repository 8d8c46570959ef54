package notify

import (
	"fmt"
	"os"
)

func (n *NotifyService) printToTerminal(title string, message string, nType NotificationType) error {
	colorCode := "\x1b[32m" // green
	if nType == Error {
		colorCode = "\x1b[31m" // red
	}
	_, err := fmt.Fprintf(n.stderr, "%s%s: %s\x1b[0m\n", colorCode, title, message)
	return err
}

func isRunningInTerminal() bool {
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
