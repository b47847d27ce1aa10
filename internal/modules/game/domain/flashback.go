package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

const (
	flashbackMaxSequence = 8
	flashbackMinDisplay  = time.Second
)

type FlashbackParams struct {
	SequenceLength int
	DisplayTime    time.Duration
	Shapes         []string
	Colors         []string
}

// ScaleFlashback lengthens the sequence every two levels and trims the
// display window by a quarter second per level.
func ScaleFlashback(level int) FlashbackParams {
	level = clampLevel(level)
	display := 3*time.Second - time.Duration(level-1)*250*time.Millisecond
	return FlashbackParams{
		SequenceLength: min(flashbackMaxSequence, 2+(level-1)/2),
		DisplayTime:    max(flashbackMinDisplay, display),
		Shapes:         Shapes,
		Colors:         Colors,
	}
}

type FlashbackPuzzle struct {
	Sequence []Symbol
	Probe    Symbol
	Seen     bool
	Display  time.Duration
}

// GenerateFlashback draws a sequence and a probe that is either one of its
// symbols or, by bounded rejection, a symbol absent from it.
func GenerateFlashback(params FlashbackParams, rng *rand.Rand) (FlashbackPuzzle, error) {
	if params.SequenceLength < 1 || len(params.Shapes) == 0 || len(params.Colors) == 0 {
		return FlashbackPuzzle{}, infeasible(KindFlashback, "sequence of %d over %d shapes and %d colors", params.SequenceLength, len(params.Shapes), len(params.Colors))
	}
	seq := make([]Symbol, params.SequenceLength)
	for i := range seq {
		seq[i] = randomSymbol(rng, params.Shapes, params.Colors)
	}
	puzzle := FlashbackPuzzle{Sequence: seq, Display: params.DisplayTime}

	if rng.IntN(2) == 1 {
		for range maxDrawAttempts {
			s := randomSymbol(rng, params.Shapes, params.Colors)
			if !slices.Contains(seq, s) {
				puzzle.Probe = s
				return puzzle, nil
			}
		}
	}
	puzzle.Probe = seq[rng.IntN(len(seq))]
	puzzle.Seen = true
	return puzzle, nil
}

func (FlashbackPuzzle) Kind() Kind { return KindFlashback }
func (p FlashbackPuzzle) DisplayTime() time.Duration { return p.Display }
func (FlashbackPuzzle) Options() int { return 0 }

func (p FlashbackPuzzle) Solution() Response {
	if p.Seen {
		return Response{Text: "seen"}
	}
	return Response{Text: "new"}
}

// ParseSeen reads a seen/new answer.
func ParseSeen(raw string) (seen bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "seen", "y", "yes":
		return true, true
	case "new", "n", "no":
		return false, true
	default:
		return false, false
	}
}

func (p FlashbackPuzzle) Evaluate(r Response) Outcome {
	seen, ok := ParseSeen(r.Text)
	if !ok {
		return Outcome{Rejected: true, Detail: "Answer seen (y) or new (n)."}
	}
	if seen == p.Seen {
		return Outcome{Correct: true, Detail: "Correct!"}
	}
	return Outcome{Detail: fmt.Sprintf("Incorrect! You answered %s, but the %s was %s.", seenWord(seen), p.Probe, seenWord(p.Seen))}
}

func seenWord(seen bool) string {
	if seen {
		return "seen"
	}
	return "new"
}

func flashbackGame() Game {
	return NewGame(Rules{
		Kind:       KindFlashback,
		Title:      "Flashback",
		Summary:    "Watch the shapes, then say whether the probe was among them.",
		TimeBudget: 180 * time.Second,
		Memorize:   true,
		OnWrong:    PolicyGameOver,
		TextAnswer: true,
	}, func(level int, rng *rand.Rand) (Puzzle, error) {
		return GenerateFlashback(ScaleFlashback(level), rng)
	})
}
