package domain

import (
	"fmt"
	"math/rand/v2"
	"time"

	apperrors "mindgym/internal/platform/errors"
)

// Response is everything a player can hand to an evaluator. Each game reads
// only the fields it needs.
type Response struct {
	Text      string
	Selection []int
	Order     []int
}

// Outcome is the verdict of an evaluator. Rejected marks a malformed response
// that must leave the session untouched.
type Outcome struct {
	Correct  bool
	Rejected bool
	Detail   string
}

// Puzzle is the immutable ground truth of one level attempt.
type Puzzle interface {
	Kind() Kind
	// DisplayTime is the memorize window; zero when the puzzle stays visible.
	DisplayTime() time.Duration
	// Options is the number of selectable items, zero when nothing is selectable.
	Options() int
	Evaluate(Response) Outcome
	// Solution is a response that Evaluate accepts as correct.
	Solution() Response
}

// Arrangeable puzzles start the player on a scrambled order of item ids.
type Arrangeable interface {
	Scrambled() []int
}

// Game binds a game's rules to its scaler and generator.
type Game struct {
	Rules    Rules
	generate func(level int, rng *rand.Rand) (Puzzle, error)
}

func NewGame(rules Rules, generate func(level int, rng *rand.Rand) (Puzzle, error)) Game {
	return Game{Rules: rules, generate: generate}
}

func (g Game) NewPuzzle(level int, rng *rand.Rand) (Puzzle, error) {
	if g.generate == nil {
		return nil, fmt.Errorf("%w: no generator for %s", apperrors.ErrGenerationInfeasible, g.Rules.Kind)
	}
	return g.generate(clampLevel(level), rng)
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}

func infeasible(kind Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", apperrors.ErrGenerationInfeasible, kind, fmt.Sprintf(format, args...))
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
