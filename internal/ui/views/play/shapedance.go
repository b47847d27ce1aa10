package play

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	gamedto "mindgym/internal/modules/game/dto"
	"mindgym/internal/ui/theme"
)

var (
	cubeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Surface1).
			Padding(0, 1)
	cubeSelected = cubeStyle.BorderForeground(theme.Peach)
)

var glyphs = map[string]string{
	"circle":   "●",
	"square":   "■",
	"triangle": "▲",
}

func glyph(s gamedto.SymbolView) string {
	g, ok := glyphs[s.Shape]
	if !ok {
		g = "?"
	}
	return lipgloss.NewStyle().Foreground(theme.SymbolColor(s.Color)).Render(g)
}

func (m Model) renderShapedance() string {
	cubes := m.snap.Puzzle.Cubes
	rendered := make([]string, 0, len(cubes))
	for i, cube := range cubes {
		style := cubeStyle
		if cube.Selected {
			style = cubeSelected
		}
		face := lipgloss.JoinVertical(lipgloss.Center, orient(cube), theme.Muted.Render(selectLabel(i, m.page)))
		rendered = append(rendered, style.Render(face))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Which two cubes carry the same pattern?"),
		"",
		row,
	)
}

// orient lays a pattern out the way its cube is turned: rotation snaps to the
// nearest quarter turn and mirroring flips the reading direction.
func orient(cube gamedto.CubeView) string {
	symbols := make([]string, len(cube.Pattern))
	for i, s := range cube.Pattern {
		symbols[i] = glyph(s)
	}
	quarter := ((int(math.Round(float64(cube.Rotation)/90)) % 4) + 4) % 4
	reversed := quarter >= 2
	if cube.Mirror {
		reversed = !reversed
	}
	if reversed {
		slices.Reverse(symbols)
	}
	if quarter%2 == 1 {
		return strings.Join(symbols, "\n")
	}
	return strings.Join(symbols, " ")
}
