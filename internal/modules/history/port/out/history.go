package out

import (
	"context"

	"mindgym/internal/modules/history/domain"
)

type RunStore interface {
	Save(ctx context.Context, run domain.Run) error
	// List returns runs newest first. An empty game matches every game.
	List(ctx context.Context, game string, limit int) ([]domain.Run, error)
	// Best returns the highest scoring run of game, or ErrNotFound.
	Best(ctx context.Context, game string) (domain.Run, error)
}
