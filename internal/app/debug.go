package app

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const maxLogLines = 1000

// LogPanel is a window showing recent log lines.
type LogPanel struct {
	window    fyne.Window
	textArea  *widget.TextGrid
	mu        sync.Mutex
	content   []string
	isVisible bool
}

func NewLogPanel(a fyne.App) *LogPanel {
	lp := &LogPanel{
		window:   a.NewWindow("niri workspaces logs"),
		textArea: widget.NewTextGrid(),
	}

	clearBtn := widget.NewButton("Clear", func() {
		lp.Clear()
	})

	content := container.NewBorder(
		container.NewHBox(clearBtn), // top
		nil,                         // bottom
		nil,                         // left
		nil,                         // right
		container.NewScroll(lp.textArea),
	)
	lp.window.SetContent(content)
	lp.window.Resize(fyne.NewSize(800, 600))

	lp.window.SetCloseIntercept(func() {
		lp.Hide()
	})

	return lp
}

// AddText appends a line, keeping only the most recent lines.
func (lp *LogPanel) AddText(text string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.content = append(lp.content, text)
	if len(lp.content) > maxLogLines {
		lp.content = lp.content[len(lp.content)-maxLogLines:]
	}
	lp.textArea.SetText(strings.Join(lp.content, "\n"))
}

func (lp *LogPanel) Text() string {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return strings.Join(lp.content, "\n")
}

func (lp *LogPanel) Clear() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.content = nil
	lp.textArea.SetText("")
}

func (lp *LogPanel) Show() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.isVisible = true
	lp.window.Show()
}

func (lp *LogPanel) Hide() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.isVisible = false
	lp.window.Hide()
}

func (lp *LogPanel) IsVisible() bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.isVisible
}

// LogWriter feeds log output into a LogPanel.
type LogWriter struct {
	panel *LogPanel
}

func NewLogWriter(panel *LogPanel) *LogWriter {
	return &LogWriter{panel: panel}
}

func (w *LogWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimSpace(string(p))
	if text != "" {
		w.panel.AddText(text)
	}
	return len(p), nil
}
