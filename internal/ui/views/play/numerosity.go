package play

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindgym/internal/ui/theme"
)

func (m Model) renderNumerosity() string {
	p := m.snap.Puzzle
	items := make([]string, 0, len(p.Pool))
	for i, v := range p.Pool {
		cell := fmt.Sprintf("%s:%d", selectLabel(i, m.page), v)
		if at := slices.Index(m.snap.Selection, i); at >= 0 {
			items = append(items, theme.Hot.Render(fmt.Sprintf("%s(%d)", cell, at+1)))
			continue
		}
		items = append(items, cell)
	}

	picked := make([]string, 0, len(m.snap.Selection))
	for _, idx := range m.snap.Selection {
		if idx >= 0 && idx < len(p.Pool) {
			picked = append(picked, fmt.Sprint(p.Pool[idx]))
		}
	}
	chain := strings.Join(picked, " "+p.Operator+" ")
	if chain == "" {
		chain = theme.Muted.Render("pick three numbers")
	}

	lines := []string{
		theme.Big.Render(fmt.Sprintf("target %d   using %s", p.Target, p.Operator)),
		strings.Join(items, "   "),
	}
	if pages := pageCount(len(p.Pool)); pages > 1 {
		lines = append(lines, theme.Muted.Render(fmt.Sprintf("keys page %d/%d", m.page+1, pages)))
	}
	lines = append(lines, "", chain)
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
