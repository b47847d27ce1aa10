package out

import (
	"context"

	"mindgym/internal/modules/game/domain"
)

// SessionStore keeps live sessions, at most one per game kind.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.SessionState, error)
	FindByKind(ctx context.Context, kind domain.Kind) (*domain.SessionState, error)
	Put(ctx context.Context, state *domain.SessionState) error
	DeleteKind(ctx context.Context, kind domain.Kind) error
	Clear(ctx context.Context) error
}

type TemplateSource interface {
	LoadTemplates(ctx context.Context) ([]domain.Template, error)
}
