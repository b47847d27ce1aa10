package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// DigitAlphabet omits Q, W and X, which read poorly at a glance.
const DigitAlphabet = "0123456789ABCDEFGHIJKLMNOPRSTUVYZ"

const DigitspanMaxLevel = 18

var digitDisplayTimes = [3]time.Duration{3 * time.Second, 2 * time.Second, 1500 * time.Millisecond}

type DigitspanParams struct {
	DigitCount  int
	DisplayTime time.Duration
}

// ScaleDigitspan adds a character every three levels and shortens the
// display window within each group of three.
func ScaleDigitspan(level int) DigitspanParams {
	level = clampLevel(level)
	return DigitspanParams{
		DigitCount:  2 + (level-1)/3,
		DisplayTime: digitDisplayTimes[(level-1)%3],
	}
}

type DigitspanPuzzle struct {
	Sequence string
	Display  time.Duration
}

// GenerateDigitspan samples with replacement from a shuffled alphabet.
func GenerateDigitspan(params DigitspanParams, rng *rand.Rand) (DigitspanPuzzle, error) {
	if params.DigitCount < 1 {
		return DigitspanPuzzle{}, infeasible(KindDigitspan, "digit count %d", params.DigitCount)
	}
	pool := []byte(DigitAlphabet)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	seq := make([]byte, params.DigitCount)
	for i := range seq {
		seq[i] = pool[rng.IntN(len(pool))]
	}
	return DigitspanPuzzle{Sequence: string(seq), Display: params.DisplayTime}, nil
}

func (DigitspanPuzzle) Kind() Kind { return KindDigitspan }
func (p DigitspanPuzzle) DisplayTime() time.Duration { return p.Display }
func (DigitspanPuzzle) Options() int { return 0 }
func (p DigitspanPuzzle) Solution() Response { return Response{Text: p.Sequence} }

// Evaluate is an exact, case-sensitive comparison of the typed sequence.
func (p DigitspanPuzzle) Evaluate(r Response) Outcome {
	answer := strings.TrimSpace(r.Text)
	if answer == "" {
		return Outcome{Rejected: true, Detail: "Type the sequence before submitting."}
	}
	if answer == p.Sequence {
		return Outcome{Correct: true, Detail: "Correct! Moving to the next level."}
	}
	return Outcome{Detail: fmt.Sprintf("Incorrect! Your answer: %s. Correct answer: %s. Try again.", answer, p.Sequence)}
}

func digitspanGame() Game {
	return NewGame(Rules{
		Kind:       KindDigitspan,
		Title:      "Digitspan",
		Summary:    "Memorize the sequence, then type it back.",
		TimeBudget: 180 * time.Second,
		MaxLevel:   DigitspanMaxLevel,
		Memorize:   true,
		OnWrong:    PolicyRetry,
		TextAnswer: true,
	}, func(level int, rng *rand.Rand) (Puzzle, error) {
		return GenerateDigitspan(ScaleDigitspan(level), rng)
	})
}
