package domain

import (
	"math/rand/v2"
	"strings"
)

var (
	Shapes = []string{"circle", "square", "triangle"}
	Colors = []string{"red", "orange", "yellow", "green", "blue", "purple"}
)

// maxDrawAttempts bounds every rejection loop in the generators.
const maxDrawAttempts = 64

type Symbol struct {
	Shape string
	Color string
}

func (s Symbol) String() string { return s.Color + " " + s.Shape }

func randomSymbol(rng *rand.Rand, shapes, colors []string) Symbol {
	return Symbol{Shape: shapes[rng.IntN(len(shapes))], Color: colors[rng.IntN(len(colors))]}
}

type Pattern []Symbol

func (p Pattern) key() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.Shape + ":" + s.Color
	}
	return strings.Join(parts, "|")
}

func randomPattern(rng *rand.Rand, length int, shapes, colors []string) Pattern {
	pat := make(Pattern, length)
	for i := range pat {
		pat[i] = randomSymbol(rng, shapes, colors)
	}
	return pat
}

// patternSpace returns the number of distinct patterns, saturating at limit.
func patternSpace(symbols, length, limit int) int {
	space := 1
	for range length {
		space *= symbols
		if space >= limit {
			return limit
		}
	}
	return space
}
