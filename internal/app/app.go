// Package app shows the workspaces in a small fyne window: one button per
// workspace, clicking a button focuses it.
package app

import (
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"niri-workspaces/internal/engine"
	"niri-workspaces/internal/workspaces"
	"niri-workspaces/pkg/core"
)

// Bar is the window presentation of the workspace snapshots.
type Bar struct {
	window   fyne.Window
	log      core.Logger
	activate func(id uint64)
	logPanel *LogPanel

	// UI elements
	status  *widget.Label
	buttons *fyne.Container

	mu      sync.Mutex
	current workspaces.Snapshot
}

// NewBar creates the bar window. activate is called with the workspace id
// when a button is clicked.
func NewBar(a fyne.App, activate func(id uint64), log core.Logger) *Bar {
	b := &Bar{
		window:   a.NewWindow("niri workspaces"),
		log:      log,
		activate: activate,
		status:   widget.NewLabel("Connecting to niri..."),
		buttons:  container.NewHBox(),
	}

	b.window.SetContent(container.NewBorder(nil, b.status, nil, nil, b.buttons))
	b.window.Resize(fyne.NewSize(480, 60))
	return b
}

// EnableLogPanel adds a "Logs" button that opens a window with the log
// output. addWriter registers the panel as an extra log destination.
func (b *Bar) EnableLogPanel(a fyne.App, addWriter func(io.Writer)) {
	b.logPanel = NewLogPanel(a)
	addWriter(NewLogWriter(b.logPanel))

	logsBtn := widget.NewButton("Logs", func() {
		b.logPanel.Show()
	})
	b.window.SetContent(container.NewBorder(nil, container.NewBorder(nil, nil, nil, logsBtn, b.status), nil, nil, b.buttons))
}

// Update replaces the buttons with one per workspace of s, in idx order.
func (b *Bar) Update(s workspaces.Snapshot) {
	views := s.Sorted()

	objects := make([]fyne.CanvasObject, 0, len(views))
	for _, v := range views {
		id := v.ID
		btn := widget.NewButton(v.Label(), func() {
			b.log.Debug("Workspace clicked", "workspace_id", id)
			b.activate(id)
		})
		btn.Importance = importance(v)
		objects = append(objects, btn)
	}

	b.mu.Lock()
	b.current = s
	b.buttons.Objects = objects
	b.mu.Unlock()

	b.buttons.Refresh()
	b.status.SetText("")
}

// Current returns the last snapshot shown.
func (b *Bar) Current() workspaces.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Buttons returns the workspace buttons in display order.
func (b *Bar) Buttons() []*widget.Button {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*widget.Button, 0, len(b.buttons.Objects))
	for _, o := range b.buttons.Objects {
		if btn, ok := o.(*widget.Button); ok {
			out = append(out, btn)
		}
	}
	return out
}

// Status returns the text of the status line.
func (b *Bar) Status() string {
	return b.status.Text
}

// Drain shows every snapshot from q until the queue is closed, then marks
// the bar as disconnected.
func (b *Bar) Drain(q *engine.Queue) {
	for {
		s, ok := q.Pop()
		if !ok {
			b.log.Info("Workspace updates stopped")
			b.status.SetText("Disconnected from niri")
			return
		}
		b.Update(s)
	}
}

// Run shows the window and blocks until it is closed. Closing the window
// detaches the queue so the sync loop stops.
func (b *Bar) Run(q *engine.Queue) {
	b.log.Info("Starting workspace bar")
	go b.Drain(q)

	b.window.SetOnClosed(func() {
		b.log.Debug("Bar window closed")
		q.Detach()
		if b.logPanel != nil {
			b.logPanel.Hide()
		}
	})
	b.window.ShowAndRun()
}

// importance maps workspace state to button emphasis: urgent, then focused,
// then active.
func importance(v workspaces.View) widget.Importance {
	switch {
	case v.IsUrgent:
		return widget.DangerImportance
	case v.IsFocused:
		return widget.HighImportance
	case v.IsActive:
		return widget.MediumImportance
	default:
		return widget.LowImportance
	}
}
