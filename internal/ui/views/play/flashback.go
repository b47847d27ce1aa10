package play

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindgym/internal/ui/theme"
)

func (m Model) renderFlashback() string {
	p := m.snap.Puzzle
	if p.Hidden {
		if p.Probe == nil {
			return theme.Muted.Render("…")
		}
		return lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render("Was this in the sequence?"),
			theme.Big.Render(glyph(*p.Probe)),
			theme.Muted.Render(p.Probe.Color+" "+p.Probe.Shape),
		)
	}
	shapes := make([]string, 0, len(p.Shapes))
	for _, s := range p.Shapes {
		shapes = append(shapes, glyph(s))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Big.Render(strings.Join(shapes, "  ")),
		fmt.Sprintf("%s hides in %.1fs", m.spinner.View(), m.snap.PhaseLeft.Seconds()),
	)
}
