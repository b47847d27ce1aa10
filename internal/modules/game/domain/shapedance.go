package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

type ShapedanceParams struct {
	PatternLength int
	CubeCount     int
	Shapes        []string
	Colors        []string
}

// ScaleShapedance grows patterns by one symbol and adds two cubes every
// three levels.
func ScaleShapedance(level int) ShapedanceParams {
	level = clampLevel(level)
	step := (level - 1) / 3
	return ShapedanceParams{
		PatternLength: 2 + step,
		CubeCount:     4 + 2*step,
		Shapes:        Shapes,
		Colors:        Colors,
	}
}

// Transform is the rotation and mirroring a cube is drawn with.
type Transform struct {
	Rotation int
	Mirror   bool
}

type ShapedancePuzzle struct {
	Patterns     []Pattern
	MatchingPair [2]int
	Transforms   []Transform
}

// GenerateShapedance places one pattern on exactly two cubes. Every other cube
// differs from it and, while the pattern space allows, from each other.
func GenerateShapedance(params ShapedanceParams, rng *rand.Rand) (ShapedancePuzzle, error) {
	symbols := len(params.Shapes) * len(params.Colors)
	if params.CubeCount < 2 || params.PatternLength < 1 || symbols == 0 {
		return ShapedancePuzzle{}, infeasible(KindShapedance, "%d cubes of length %d over %d symbols", params.CubeCount, params.PatternLength, symbols)
	}
	space := patternSpace(symbols, params.PatternLength, params.CubeCount)
	if space < 2 {
		return ShapedancePuzzle{}, infeasible(KindShapedance, "pattern space of %d cannot hold a distractor", space)
	}
	distinctAll := space >= params.CubeCount-1

	matching := randomPattern(rng, params.PatternLength, params.Shapes, params.Colors)
	perm := rng.Perm(params.CubeCount)
	pair := [2]int{min(perm[0], perm[1]), max(perm[0], perm[1])}

	seen := map[string]bool{matching.key(): true}
	patterns := make([]Pattern, params.CubeCount)
	for i := range patterns {
		if i == pair[0] || i == pair[1] {
			patterns[i] = matching
			continue
		}
		placed := false
		for range maxDrawAttempts {
			pat := randomPattern(rng, params.PatternLength, params.Shapes, params.Colors)
			k := pat.key()
			if k == matching.key() || (distinctAll && seen[k]) {
				continue
			}
			seen[k] = true
			patterns[i] = pat
			placed = true
			break
		}
		if !placed {
			return ShapedancePuzzle{}, infeasible(KindShapedance, "no distinct pattern for cube %d after %d draws", i+1, maxDrawAttempts)
		}
	}

	transforms := make([]Transform, params.CubeCount)
	for i := range transforms {
		transforms[i] = Transform{Rotation: between(rng, -180, 180), Mirror: rng.IntN(2) == 1}
	}
	return ShapedancePuzzle{Patterns: patterns, MatchingPair: pair, Transforms: transforms}, nil
}

func (ShapedancePuzzle) Kind() Kind { return KindShapedance }
func (ShapedancePuzzle) DisplayTime() time.Duration { return 0 }
func (p ShapedancePuzzle) Options() int { return len(p.Patterns) }

func (p ShapedancePuzzle) Solution() Response {
	return Response{Selection: []int{p.MatchingPair[0], p.MatchingPair[1]}}
}

// Evaluate compares the selection to the matching pair as an unordered pair.
func (p ShapedancePuzzle) Evaluate(r Response) Outcome {
	if len(r.Selection) != 2 {
		return Outcome{Rejected: true, Detail: "Select exactly 2 cubes."}
	}
	picked := slices.Sorted(slices.Values(r.Selection))
	if picked[0] == p.MatchingPair[0] && picked[1] == p.MatchingPair[1] {
		return Outcome{Correct: true, Detail: "Correct! Moving to the next level."}
	}
	return Outcome{Detail: fmt.Sprintf("Incorrect! Your answer: %v. Correct answer: %v. Try again.",
		[]int{picked[0] + 1, picked[1] + 1},
		[]int{p.MatchingPair[0] + 1, p.MatchingPair[1] + 1})}
}

func shapedanceGame() Game {
	return NewGame(Rules{
		Kind:        KindShapedance,
		Title:       "Shapedance",
		Summary:     "Find the two cubes that carry the same pattern.",
		TimeBudget:  180 * time.Second,
		OnWrong:     PolicyRetryPuzzle,
		AutoAdvance: true,
		SelectLimit: 2,
		AutoSubmit:  true,
	}, func(level int, rng *rand.Rand) (Puzzle, error) {
		return GenerateShapedance(ScaleShapedance(level), rng)
	})
}
