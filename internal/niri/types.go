// Package niri speaks the niri compositor's IPC protocol: newline-delimited
// JSON over the unix socket named by $NIRI_SOCKET.
package niri

import "encoding/json"

// Workspace is a workspace as reported by niri.
type Workspace struct {
	ID             uint64  `json:"id"`
	Idx            uint8   `json:"idx"`
	Name           *string `json:"name"`
	Output         *string `json:"output"`
	IsUrgent       bool    `json:"is_urgent"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// WindowLayout is the layout part of a window. Only the scrolling position
// is interpreted; it is a 1-based (column, row) pair, nil for floating
// windows.
type WindowLayout struct {
	PosInScrollingLayout *[2]uint64 `json:"pos_in_scrolling_layout"`
	TileSize             [2]float64 `json:"tile_size"`
	WindowSize           [2]int32   `json:"window_size"`
}

// Window is a toplevel window as reported by niri.
type Window struct {
	ID          uint64       `json:"id"`
	Title       *string      `json:"title"`
	AppID       *string      `json:"app_id"`
	PID         *int32       `json:"pid"`
	WorkspaceID *uint64      `json:"workspace_id"`
	IsFocused   bool         `json:"is_focused"`
	IsFloating  bool         `json:"is_floating"`
	IsUrgent    bool         `json:"is_urgent"`
	Layout      WindowLayout `json:"layout"`
}

// EventKind is the tag of an event-stream message.
type EventKind string

const (
	EventWorkspacesChanged            EventKind = "WorkspacesChanged"
	EventWorkspaceUrgencyChanged      EventKind = "WorkspaceUrgencyChanged"
	EventWorkspaceActivated           EventKind = "WorkspaceActivated"
	EventWorkspaceActiveWindowChanged EventKind = "WorkspaceActiveWindowChanged"
	EventWindowsChanged               EventKind = "WindowsChanged"
	EventWindowOpenedOrChanged        EventKind = "WindowOpenedOrChanged"
	EventWindowClosed                 EventKind = "WindowClosed"
	EventWindowFocusChanged           EventKind = "WindowFocusChanged"
	EventWindowUrgencyChanged         EventKind = "WindowUrgencyChanged"
	EventWindowLayoutsChanged         EventKind = "WindowLayoutsChanged"
	EventKeyboardLayoutsChanged       EventKind = "KeyboardLayoutsChanged"
	EventKeyboardLayoutSwitched       EventKind = "KeyboardLayoutSwitched"
	EventOverviewOpenedOrClosed       EventKind = "OverviewOpenedOrClosed"
	EventConfigLoaded                 EventKind = "ConfigLoaded"
)

// Event is one message of the event stream. The payload is kept raw; only
// the kind is needed to decide whether state must be re-fetched.
type Event struct {
	Kind    EventKind
	Payload json.RawMessage
}
