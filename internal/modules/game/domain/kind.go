package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "mindgym/internal/platform/errors"
)

type Kind string

const (
	KindDigitspan  Kind = "digitspan"
	KindShapedance Kind = "shapedance"
	KindNumerosity Kind = "numerosity"
	KindPathfinder Kind = "pathfinder"
	KindFlashback  Kind = "flashback"
)

// Kinds lists every game in catalog order.
var Kinds = []Kind{KindDigitspan, KindShapedance, KindNumerosity, KindPathfinder, KindFlashback}

func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

func (k Kind) Validate() error {
	for _, known := range Kinds {
		if k == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", apperrors.ErrUnknownGame, string(k))
}

// FailurePolicy decides what a wrong answer does to the session.
type FailurePolicy string

const (
	// PolicyRetry returns to init so the player can start a fresh puzzle.
	PolicyRetry FailurePolicy = "retry"
	// PolicyRetryPuzzle keeps the same puzzle live and clears the selection.
	PolicyRetryPuzzle FailurePolicy = "retry_puzzle"
	// PolicyGameOver ends the session on the first miss.
	PolicyGameOver FailurePolicy = "game_over"
)

// Rules are the fixed, per-game parameters of the stage machine.
type Rules struct {
	Kind        Kind
	Title       string
	Summary     string
	TimeBudget  time.Duration
	MaxLevel    int // 0 means uncapped
	Memorize    bool
	OnWrong     FailurePolicy
	AutoAdvance bool
	SelectLimit int
	AutoSubmit  bool
	Arrange     bool
	TextAnswer  bool
}

// Capped reports whether level is beyond the game's last level.
func (r Rules) Capped(level int) bool {
	return r.MaxLevel > 0 && level > r.MaxLevel
}
