package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures a non-interactive render of the model.
type SnapshotConfig struct {
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
}

// RenderSnapshot applies the scripted keys to m and returns the resulting
// screen. Submissions made by the keys reach the form's submit function as
// they would interactively.
func RenderSnapshot(m *Model, cfg SnapshotConfig) string {
	if cfg.Width > 0 {
		m.width = cfg.Width
	} else {
		m.width = 80
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
	} else {
		m.height = 24
	}
	ApplyKeys(m, cfg.StartKeys)

	view := m.Render()
	if cfg.NoColor {
		view = ansi.Strip(view)
	}
	if cfg.Height > 0 {
		view = padSnapshotHeight(view, cfg.Height, cfg.Width)
	}
	return view
}

func padSnapshotHeight(view string, height, width int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
