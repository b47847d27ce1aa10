package service

import (
	"context"
	"fmt"

	"mindgym/internal/modules/history/domain"
	historyout "mindgym/internal/modules/history/port/out"
	"mindgym/internal/platform/clock"
	apperrors "mindgym/internal/platform/errors"
	"mindgym/internal/platform/id"
)

const defaultListLimit = 20

type RunService struct {
	clock clock.Clock
	idGen id.Generator
	store historyout.RunStore
}

func NewRunService(clock clock.Clock, idGen id.Generator, store historyout.RunStore) *RunService {
	return &RunService{clock: clock, idGen: idGen, store: store}
}

func (s *RunService) Record(ctx context.Context, run domain.Run) (domain.Run, error) {
	if s.store == nil {
		return domain.Run{}, apperrors.ErrJournalNotConfigured
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = s.clock.Now()
	}
	if err := run.Validate(); err != nil {
		return domain.Run{}, err
	}
	run.ID = s.idGen.New()
	if err := s.store.Save(ctx, run); err != nil {
		return domain.Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

func (s *RunService) List(ctx context.Context, game string, limit int) ([]domain.Run, error) {
	if s.store == nil {
		return nil, apperrors.ErrJournalNotConfigured
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", apperrors.ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	return s.store.List(ctx, game, limit)
}

func (s *RunService) Best(ctx context.Context, game string) (domain.Run, error) {
	if s.store == nil {
		return domain.Run{}, apperrors.ErrJournalNotConfigured
	}
	return s.store.Best(ctx, game)
}
