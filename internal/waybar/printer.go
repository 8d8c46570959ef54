// Package waybar prints snapshots as waybar custom-module JSON, one object
// per line.
package waybar

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"niri-workspaces/internal/engine"
	"niri-workspaces/internal/workspaces"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/core"
)

// Output is one line of the custom module protocol.
type Output struct {
	Text    string   `json:"text"`
	Tooltip string   `json:"tooltip"`
	Class   []string `json:"class"`
}

// Printer renders snapshots and writes them to w.
type Printer struct {
	w       io.Writer
	formats config.WorkspaceFormats
	log     core.Logger
}

func NewPrinter(w io.Writer, formats config.WorkspaceFormats, log core.Logger) *Printer {
	return &Printer{w: w, formats: formats, log: log}
}

// Render builds the module output for a snapshot. Workspaces are shown in
// idx order. Workspace names are escaped; icons are passed through so icon
// formats can carry pango markup. The module classes are those of the
// focused workspace, plus "urgent" while any workspace is urgent.
func (p *Printer) Render(s workspaces.Snapshot) Output {
	views := s.Sorted()

	texts := make([]string, 0, len(views))
	tooltip := make([]string, 0, len(views))
	class := []string{}
	urgent := false
	for _, v := range views {
		v.Name = html.EscapeString(v.Name)
		label := v.Label()
		texts = append(texts, strings.Replace(p.format(v), config.LabelPlaceholder, label, 1))
		tooltip = append(tooltip, fmt.Sprintf("%s (id %d)", label, v.ID))
		if v.IsFocused {
			class = append(class, v.Classes()...)
		}
		urgent = urgent || v.IsUrgent
	}
	if urgent && !slices.Contains(class, "urgent") {
		class = append(class, "urgent")
	}

	return Output{
		Text:    strings.Join(texts, " "),
		Tooltip: strings.Join(tooltip, "\n"),
		Class:   class,
	}
}

// format picks the template for a workspace: urgent, then focused, then
// active, then default.
func (p *Printer) format(v workspaces.View) string {
	switch {
	case v.IsUrgent:
		return p.formats.Urgent
	case v.IsFocused:
		return p.formats.Focused
	case v.IsActive:
		return p.formats.Active
	default:
		return p.formats.Default
	}
}

// Print writes one rendered line.
func (p *Printer) Print(s workspaces.Snapshot) error {
	data, err := json.Marshal(p.Render(s))
	if err != nil {
		return fmt.Errorf("failed to encode waybar output: %w", err)
	}
	data = append(data, '\n')
	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("failed to write waybar output: %w", err)
	}
	return nil
}

// Drain prints every snapshot from q until the queue is closed. If writing
// fails the queue is detached so the sync loop stops.
func (p *Printer) Drain(q *engine.Queue) error {
	for {
		s, ok := q.Pop()
		if !ok {
			return nil
		}
		if err := p.Print(s); err != nil {
			p.log.Error("Failed to print snapshot", err)
			q.Detach()
			return err
		}
	}
}
