package play

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindgym/internal/ui/theme"
)

func (m Model) renderDigitspan() string {
	p := m.snap.Puzzle
	if p.Hidden {
		return lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render("What was the sequence?"),
			"",
			m.input.View(),
		)
	}
	spaced := strings.Join(strings.Split(p.Sequence, ""), " ")
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Big.Render(spaced),
		fmt.Sprintf("%s hides in %.1fs", m.spinner.View(), m.snap.PhaseLeft.Seconds()),
	)
}
