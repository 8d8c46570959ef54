package workspaces

import (
	"sort"

	"niri-workspaces/internal/niri"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/core"
)

// Aggregate builds one View per workspace and appends the formatted icon of
// every window to its workspace, in scrolling-layout order. The two lists
// come from separate queries, so a window may name a workspace that is no
// longer listed; such windows are skipped.
func Aggregate(cfg *config.Config, workspaces []niri.Workspace, windows []niri.Window, log core.Logger) Snapshot {
	views := make(map[uint64]*View, len(workspaces))
	order := make([]uint64, 0, len(workspaces))
	for _, ws := range workspaces {
		if _, dup := views[ws.ID]; !dup {
			order = append(order, ws.ID)
		}
		v := &View{
			ID:        ws.ID,
			Idx:       ws.Idx,
			IsFocused: ws.IsFocused,
			IsUrgent:  ws.IsUrgent,
			IsActive:  ws.IsActive,
		}
		if ws.Name != nil {
			v.Name = *ws.Name
		}
		views[ws.ID] = v
	}

	sorted := make([]niri.Window, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return positionLess(sorted[i].Layout.PosInScrollingLayout, sorted[j].Layout.PosInScrollingLayout)
	})

	dropped := 0
	for i := range sorted {
		w := &sorted[i]
		if w.WorkspaceID == nil {
			continue
		}
		v, ok := views[*w.WorkspaceID]
		if !ok {
			dropped++
			continue
		}

		icon := FormatIcon(cfg.Formats, ResolveIcon(cfg, w, log), w.IsFocused, w.IsUrgent)
		if v.Icons != "" {
			v.Icons += " "
		}
		v.Icons += icon
	}

	if dropped > 0 {
		log.Debug("Skipped windows on unknown workspaces", "count", dropped)
	}

	snapshot := make(Snapshot, 0, len(order))
	for _, id := range order {
		snapshot = append(snapshot, *views[id])
	}
	return snapshot
}

// positionLess orders scrolling positions with missing positions first, then
// by column, then by row.
func positionLess(a, b *[2]uint64) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	case a[0] != b[0]:
		return a[0] < b[0]
	default:
		return a[1] < b[1]
	}
}
