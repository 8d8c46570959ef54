// Package workspaces turns niri's workspace and window lists into per-workspace
// views annotated with application icons.
package workspaces

import (
	"strings"

	"niri-workspaces/internal/niri"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/core"
)

// ResolveIcon returns the glyph for a window's application id. Lookup is
// case-insensitive on the window side: the id is lowercased before it is
// looked up. Missing ids and unknown applications fall back to the
// configured default icon.
func ResolveIcon(cfg *config.Config, w *niri.Window, log core.Logger) string {
	if w.AppID == nil {
		log.Warn("Window doesn't have an app_id", "window_id", w.ID)
		return cfg.IconDefault
	}

	if icon, ok := cfg.Icons[strings.ToLower(*w.AppID)]; ok {
		return icon
	}

	log.Warn("No icon configured for app_id", "app_id", *w.AppID)
	return cfg.IconDefault
}

// FormatIcon applies the template for the window's state. Urgent wins over
// focused, focused over default. The placeholder is substituted once; a
// template without it is returned unchanged.
func FormatIcon(formats config.Formats, icon string, focused, urgent bool) string {
	format := formats.Default
	switch {
	case urgent:
		format = formats.Urgent
	case focused:
		format = formats.Focused
	}
	return strings.Replace(format, config.IconPlaceholder, icon, 1)
}
