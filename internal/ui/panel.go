package ui

import (
	"fmt"

	"life-torus/pkg/core"
)

// Stats is the per-frame viewer state shown on the HUD.
type Stats struct {
	Generation int
	Population int
	Dirty      int
	Paused     bool
	Seed       int64
}

// Help lists the key bindings in display order.
var Help = []string{
	"Space pause  N step",
	"Enter resume",
	"R reset  S reseed",
	"Click toggle cell",
	"Ctrl-click glider",
	"D changes  G grid",
	"Q / Esc quit",
}

// PanelLines lays out the HUD text: title, live stats, each parameter
// group, then key help. Empty strings are spacer lines.
func PanelLines(title string, s Stats, snap core.ParameterSnapshot) []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Generation %d", s.Generation),
		fmt.Sprintf("Population %d", s.Population),
		fmt.Sprintf("Changed    %d", s.Dirty),
		fmt.Sprintf("Seed       %d", s.Seed),
		"State      " + state,
	}
	for _, group := range snap.Groups {
		lines = append(lines, "", group.Name)
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("  %-15s %s", p.Label, p.Value))
		}
	}
	lines = append(lines, "")
	return append(lines, Help...)
}
