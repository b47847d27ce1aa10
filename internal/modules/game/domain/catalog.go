package domain

import (
	"fmt"
	"time"

	apperrors "mindgym/internal/platform/errors"
)

// Catalog holds the playable games keyed by kind.
type Catalog struct {
	games map[Kind]Game
}

// NewCatalog builds every game. budgets overrides per-game time budgets;
// missing or non-positive entries keep the defaults.
func NewCatalog(templates []Template, budgets map[Kind]time.Duration) (*Catalog, error) {
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("pathfinder templates: %w", err)
		}
	}
	games := map[Kind]Game{
		KindDigitspan:  digitspanGame(),
		KindShapedance: shapedanceGame(),
		KindNumerosity: numerosityGame(),
		KindPathfinder: pathfinderGame(templates),
		KindFlashback:  flashbackGame(),
	}
	for kind, budget := range budgets {
		g, ok := games[kind]
		if !ok || budget <= 0 {
			continue
		}
		g.Rules.TimeBudget = budget
		games[kind] = g
	}
	return &Catalog{games: games}, nil
}

func (c *Catalog) Lookup(kind Kind) (Game, error) {
	g, ok := c.games[kind]
	if !ok {
		return Game{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownGame, string(kind))
	}
	return g, nil
}

// Games returns every game in Kinds order.
func (c *Catalog) Games() []Game {
	out := make([]Game, 0, len(c.games))
	for _, kind := range Kinds {
		if g, ok := c.games[kind]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Params returns the difficulty parameters kind's scaler derives for level.
func Params(kind Kind, level int) (any, error) {
	switch kind {
	case KindDigitspan:
		return ScaleDigitspan(level), nil
	case KindShapedance:
		p := ScaleShapedance(level)
		return struct {
			PatternLength int
			CubeCount     int
		}{p.PatternLength, p.CubeCount}, nil
	case KindNumerosity:
		return ScaleNumerosity(level), nil
	case KindPathfinder:
		return ScalePathfinder(level), nil
	case KindFlashback:
		p := ScaleFlashback(level)
		return struct {
			SequenceLength int
			DisplayTime    time.Duration
		}{p.SequenceLength, p.DisplayTime}, nil
	}
	return nil, kind.Validate()
}
