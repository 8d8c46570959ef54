package workspaces

import (
	"sort"
	"strconv"
	"strings"
)

// View is the state of one workspace in a snapshot.
type View struct {
	ID        uint64 `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Icons     string `json:"icons"      yaml:"icons"`
	Idx       uint8  `json:"idx"        yaml:"idx"`
	IsFocused bool   `json:"is_focused" yaml:"is_focused"`
	IsUrgent  bool   `json:"is_urgent"  yaml:"is_urgent"`
	IsActive  bool   `json:"is_active"  yaml:"is_active"`
}

// Label renders "idx", "idx name", "idx: icons" or "idx name: icons".
func (v View) Label() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(v.Idx)))
	if v.Name != "" {
		b.WriteByte(' ')
		b.WriteString(v.Name)
	}
	if v.Icons != "" {
		b.WriteString(": ")
		b.WriteString(v.Icons)
	}
	return b.String()
}

// Classes returns the state classes that apply to the workspace, in the
// order focused, urgent, active.
func (v View) Classes() []string {
	var classes []string
	if v.IsFocused {
		classes = append(classes, "focused")
	}
	if v.IsUrgent {
		classes = append(classes, "urgent")
	}
	if v.IsActive {
		classes = append(classes, "active")
	}
	return classes
}

// Snapshot is one complete set of workspace views. It is a full replacement
// of any previous snapshot and carries no particular order.
type Snapshot []View

// Sorted returns a copy ordered by ascending display index.
func (s Snapshot) Sorted() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Idx != out[j].Idx {
			return out[i].Idx < out[j].Idx
		}
		return out[i].ID < out[j].ID
	})
	return out
}
