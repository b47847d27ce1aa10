package play

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mindgym/internal/ui/theme"
)

var (
	tileStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Surface1).
			Padding(0, 1)
	tileCursor = tileStyle.BorderForeground(theme.Lavender)
)

var edgeArrows = map[string]string{"up": "↑", "down": "↓", "left": "←", "right": "→"}

func (m Model) renderPathfinder() string {
	tiles := m.snap.Puzzle.Tiles
	rendered := make([]string, 0, len(tiles))
	for i, t := range tiles {
		arrows := make([]string, 0, len(t.OpenEdges))
		for _, e := range t.OpenEdges {
			arrows = append(arrows, edgeArrows[e])
		}
		face := lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render(fmt.Sprintf("#%d", t.ID)),
			t.Type,
			strings.Join(arrows, " "),
		)
		style := tileStyle
		if i == m.cursor {
			style = tileCursor
		}
		rendered = append(rendered, style.Render(face))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Reorder the tiles into a connected road"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
	)
}

func (m Model) pathfinderKey(key string) (Model, tea.Cmd) {
	n := len(m.snap.Puzzle.Tiles)
	if n == 0 {
		return m, nil
	}
	switch key {
	case "left", "h":
		m.cursor = max(0, m.cursor-1)
	case "right", "l":
		m.cursor = min(n-1, m.cursor+1)
	case "[":
		if m.cursor == 0 {
			return m, nil
		}
		idx := m.cursor
		m.cursor--
		return m, m.move(idx, "left")
	case "]":
		if m.cursor == n-1 {
			return m, nil
		}
		idx := m.cursor
		m.cursor++
		return m, m.move(idx, "right")
	}
	return m, nil
}
