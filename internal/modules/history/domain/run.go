package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "mindgym/internal/platform/errors"
)

// Run is one finished session as kept in the journal.
type Run struct {
	ID        string
	SessionID string
	Game      string
	Score     int
	Level     int
	EndReason string
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time
}

func (r Run) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Game) == "" {
		return fmt.Errorf("%w: game is required", apperrors.ErrInvalidInput)
	}
	if r.Score < 0 || r.Level < 1 {
		return fmt.Errorf("%w: score %d at level %d", apperrors.ErrInvalidInput, r.Score, r.Level)
	}
	if r.EndedAt.Before(r.StartedAt) {
		return fmt.Errorf("%w: run ends before it starts", apperrors.ErrInvalidInput)
	}
	return nil
}

func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
