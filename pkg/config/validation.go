package config

import (
	"fmt"
	"sort"
	"strings"
)

// Warning is a non-fatal configuration problem.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}

// Validate reports templates without their placeholder and icon keys that
// can never match a lookup. The configuration is used as-is either way.
func (c Config) Validate() []Warning {
	var warnings []Warning

	iconFormats := []struct {
		name   string
		format string
	}{
		{"focused", c.Formats.Focused},
		{"urgent", c.Formats.Urgent},
		{"default", c.Formats.Default},
	}
	for _, f := range iconFormats {
		if !strings.Contains(f.format, IconPlaceholder) {
			warnings = append(warnings, Warning{
				Field:   "window-icon-format." + f.name,
				Message: fmt.Sprintf("format must contain %q, the icon will not be shown", IconPlaceholder),
			})
		}
	}

	workspaceFormats := []struct {
		name   string
		format string
	}{
		{"focused", c.WorkspaceFormats.Focused},
		{"urgent", c.WorkspaceFormats.Urgent},
		{"active", c.WorkspaceFormats.Active},
		{"default", c.WorkspaceFormats.Default},
	}
	for _, f := range workspaceFormats {
		if !strings.Contains(f.format, LabelPlaceholder) {
			warnings = append(warnings, Warning{
				Field:   "workspace-format." + f.name,
				Message: fmt.Sprintf("format must contain %q, the label will not be shown", LabelPlaceholder),
			})
		}
	}

	keys := make([]string, 0, len(c.Icons))
	for k := range c.Icons {
		if k != strings.ToLower(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		warnings = append(warnings, Warning{
			Field:   "window-icons." + k,
			Message: "key is not lowercase and will never match a window",
		})
	}

	return warnings
}
