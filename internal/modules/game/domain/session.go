package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// SessionState is one player's in-memory run of one game. It is owned by a
// single caller and never shared.
type SessionState struct {
	ID         string
	Kind       Kind
	Seed       int64
	StartedAt  time.Time
	TimeBudget time.Duration

	Level         int
	Score         int
	Stage         Stage
	Puzzle        Puzzle
	ResultMessage string
	Selection     []int
	Arrangement   []int
	PhaseDeadline time.Time

	EndReason EndReason
	EndedAt   time.Time
	Recorded  bool

	rng *rand.Rand
}

func NewSessionState(id string, rules Rules, seed int64, rng *rand.Rand, now time.Time) *SessionState {
	return &SessionState{
		ID:         id,
		Kind:       rules.Kind,
		Seed:       seed,
		StartedAt:  now,
		TimeBudget: rules.TimeBudget,
		Level:      1,
		Stage:      StageInit,
		rng:        rng,
	}
}

func (s *SessionState) Rand() *rand.Rand { return s.rng }

// TimeLeft is never negative.
func (s *SessionState) TimeLeft(now time.Time) time.Duration {
	left := s.TimeBudget - now.Sub(s.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// PhaseLeft is the remaining memorize window, zero when none is open.
func (s *SessionState) PhaseLeft(now time.Time) time.Duration {
	if s.PhaseDeadline.IsZero() {
		return 0
	}
	left := s.PhaseDeadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (s *SessionState) Over() bool { return s.Stage == StageGameOver }

// Present makes puzzle the live puzzle and opens its memorize window, if any.
func (s *SessionState) Present(puzzle Puzzle, now time.Time) {
	s.Puzzle = puzzle
	s.Stage = StagePresent
	s.ResultMessage = ""
	s.Selection = nil
	s.Arrangement = nil
	s.PhaseDeadline = time.Time{}
	if d := puzzle.DisplayTime(); d > 0 {
		s.PhaseDeadline = now.Add(d)
	}
	if a, ok := puzzle.(Arrangeable); ok {
		s.Arrangement = slices.Clone(a.Scrambled())
	}
}

// Retire drops the live puzzle and waits for the next start action.
func (s *SessionState) Retire() {
	s.Puzzle = nil
	s.Stage = StageInit
	s.Selection = nil
	s.Arrangement = nil
	s.PhaseDeadline = time.Time{}
}

// End moves the session to its terminal stage. Calling it again is a no-op.
func (s *SessionState) End(reason EndReason, now time.Time) {
	if s.Over() {
		return
	}
	s.Retire()
	s.Stage = StageGameOver
	s.EndReason = reason
	s.EndedAt = now
	switch reason {
	case ReasonTime:
		s.ResultMessage = "Time's up!"
	case ReasonMaxLevel:
		s.ResultMessage = "Maximum level reached!"
	}
}

// Response collects the transient player input for the live puzzle.
func (s *SessionState) Response(text string) Response {
	return Response{Text: text, Selection: slices.Clone(s.Selection), Order: slices.Clone(s.Arrangement)}
}

// ToggleSelection adds or removes index. Adding beyond limit is rejected.
func (s *SessionState) ToggleSelection(index, limit, options int) error {
	if index < 0 || index >= options {
		return fmt.Errorf("no item at position %d", index+1)
	}
	if at := slices.Index(s.Selection, index); at >= 0 {
		s.Selection = slices.Delete(s.Selection, at, at+1)
		return nil
	}
	if limit > 0 && len(s.Selection) >= limit {
		return fmt.Errorf("you can only select %d items", limit)
	}
	s.Selection = append(s.Selection, index)
	return nil
}

// MoveTile swaps the tile at index with its neighbour in dir.
func (s *SessionState) MoveTile(index int, dir Direction) error {
	if index < 0 || index >= len(s.Arrangement) {
		return fmt.Errorf("no tile at position %d", index+1)
	}
	target := index - 1
	if dir == DirRight {
		target = index + 1
	}
	if target < 0 || target >= len(s.Arrangement) {
		return fmt.Errorf("tile %d is already at the %s edge", index+1, dir)
	}
	s.Arrangement[index], s.Arrangement[target] = s.Arrangement[target], s.Arrangement[index]
	return nil
}
