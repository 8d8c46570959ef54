// Package wm detects the running compositor and opens connections to it.
package wm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"niri-workspaces/internal/engine"
	"niri-workspaces/internal/niri"
	"niri-workspaces/pkg/core"
)

// ErrUnsupportedCompositor is returned when the session runs a compositor
// other than niri.
var ErrUnsupportedCompositor = errors.New("unsupported compositor: only niri is supported")

// Session is a niri session reachable through its IPC socket.
type Session struct {
	SocketPath string
	log        core.Logger
}

// Detect finds the niri socket. An explicit socket path (from the flag or
// the config file) wins over $NIRI_SOCKET.
func Detect(socketOverride string, log core.Logger) (*Session, error) {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Debug("Session type detected", "session", sessionType)

	if socketOverride != "" {
		log.Info("Using configured niri socket", "path", socketOverride)
		return &Session{SocketPath: socketOverride, log: log}, nil
	}

	path, err := niri.SocketPath()
	if err == nil {
		log.Info("niri session detected", "path", path)
		return &Session{SocketPath: path, log: log}, nil
	}

	if name := otherCompositor(); name != "" {
		return nil, fmt.Errorf("%w (found %s)", ErrUnsupportedCompositor, name)
	}
	if sessionType != "" && sessionType != "wayland" {
		return nil, fmt.Errorf("unsupported session type: %s", sessionType)
	}
	return nil, err
}

func otherCompositor() string {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return "Hyprland"
	}
	if os.Getenv("SWAYSOCK") != "" {
		return "sway"
	}
	desktop := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktop != "" && !strings.EqualFold(desktop, "niri") {
		return desktop
	}
	return ""
}

// Dial opens a connection for the sync loop.
func (s *Session) Dial() (engine.Conn, error) {
	s.log.Debug("Connecting to niri", "path", s.SocketPath)
	sock, err := niri.Connect(s.SocketPath)
	if err != nil {
		return nil, err
	}
	return sock, nil
}

// DialFocuser opens a connection for one workspace activation.
func (s *Session) DialFocuser() (engine.Focuser, error) {
	sock, err := niri.Connect(s.SocketPath)
	if err != nil {
		return nil, err
	}
	return sock, nil
}
