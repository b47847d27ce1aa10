package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Edge string

const (
	EdgeUp    Edge = "up"
	EdgeDown  Edge = "down"
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

type Tile struct {
	ID        int    `yaml:"id"`
	Type      string `yaml:"type"`
	OpenEdges []Edge `yaml:"open_edges"`
}

// Template is a road laid out in its correct order.
type Template struct {
	Name  string `yaml:"name"`
	Tiles []Tile `yaml:"tiles"`
}

func (t Template) Validate() error {
	if len(t.Tiles) < 2 {
		return fmt.Errorf("template %q needs at least 2 tiles, has %d", t.Name, len(t.Tiles))
	}
	ids := map[int]bool{}
	for _, tile := range t.Tiles {
		if ids[tile.ID] {
			return fmt.Errorf("template %q repeats tile id %d", t.Name, tile.ID)
		}
		ids[tile.ID] = true
		for _, e := range tile.OpenEdges {
			switch e {
			case EdgeUp, EdgeDown, EdgeLeft, EdgeRight:
			default:
				return fmt.Errorf("template %q tile %d has unknown edge %q", t.Name, tile.ID, string(e))
			}
		}
	}
	return nil
}

type PathfinderParams struct {
	MaxTiles int
}

// ScalePathfinder admits one more tile every two levels.
func ScalePathfinder(level int) PathfinderParams {
	level = clampLevel(level)
	return PathfinderParams{MaxTiles: 3 + (level-1)/2}
}

type PathfinderPuzzle struct {
	Template string
	Correct  []Tile
	Shuffled []Tile
}

// GeneratePathfinder picks a template that fits params and scrambles it. The
// shortest templates stay eligible when none fits.
func GeneratePathfinder(params PathfinderParams, templates []Template, rng *rand.Rand) (PathfinderPuzzle, error) {
	if len(templates) == 0 {
		return PathfinderPuzzle{}, infeasible(KindPathfinder, "empty template library")
	}
	eligible := make([]Template, 0, len(templates))
	shortest := len(templates[0].Tiles)
	for _, t := range templates {
		shortest = min(shortest, len(t.Tiles))
		if len(t.Tiles) <= params.MaxTiles {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		for _, t := range templates {
			if len(t.Tiles) == shortest {
				eligible = append(eligible, t)
			}
		}
	}
	chosen := eligible[rng.IntN(len(eligible))]
	if err := chosen.Validate(); err != nil {
		return PathfinderPuzzle{}, infeasible(KindPathfinder, "%v", err)
	}

	correct := append([]Tile(nil), chosen.Tiles...)
	correctIDs := tileIDs(correct)
	scrambled := append([]Tile(nil), correct...)
	for range maxDrawAttempts {
		rng.Shuffle(len(scrambled), func(i, j int) { scrambled[i], scrambled[j] = scrambled[j], scrambled[i] })
		if !sameInts(tileIDs(scrambled), correctIDs) {
			return PathfinderPuzzle{Template: chosen.Name, Correct: correct, Shuffled: scrambled}, nil
		}
	}
	return PathfinderPuzzle{}, infeasible(KindPathfinder, "template %q never scrambled after %d shuffles", chosen.Name, maxDrawAttempts)
}

func tileIDs(tiles []Tile) []int {
	ids := make([]int, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}

// Tile looks up a tile of the puzzle by id.
func (p PathfinderPuzzle) Tile(id int) (Tile, bool) {
	for _, t := range p.Correct {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

func (PathfinderPuzzle) Kind() Kind { return KindPathfinder }
func (PathfinderPuzzle) DisplayTime() time.Duration { return 0 }
func (PathfinderPuzzle) Options() int { return 0 }
func (p PathfinderPuzzle) Scrambled() []int { return tileIDs(p.Shuffled) }
func (p PathfinderPuzzle) Solution() Response { return Response{Order: tileIDs(p.Correct)} }

// Evaluate compares the full ordered sequence of tile ids.
func (p PathfinderPuzzle) Evaluate(r Response) Outcome {
	want := tileIDs(p.Correct)
	if len(r.Order) != len(want) {
		return Outcome{Rejected: true, Detail: "Arrange every tile before submitting."}
	}
	if sameInts(r.Order, want) {
		return Outcome{Correct: true, Detail: "Correct!"}
	}
	return Outcome{Detail: fmt.Sprintf("Incorrect. Your order: %v. Correct order: %v.", r.Order, want)}
}

func pathfinderGame(templates []Template) Game {
	library := append([]Template(nil), templates...)
	return NewGame(Rules{
		Kind:       KindPathfinder,
		Title:      "Pathfinder",
		Summary:    "Reorder the road tiles into a connected path.",
		TimeBudget: 300 * time.Second,
		OnWrong:    PolicyRetry,
		Arrange:    true,
	}, func(level int, rng *rand.Rand) (Puzzle, error) {
		return GeneratePathfinder(ScalePathfinder(level), library, rng)
	})
}
