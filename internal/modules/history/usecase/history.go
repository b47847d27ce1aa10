package usecase

import (
	"context"
	"strings"

	"mindgym/internal/modules/history/domain"
	"mindgym/internal/modules/history/dto"
	historyin "mindgym/internal/modules/history/port/in"
	"mindgym/internal/modules/history/service"
)

type Interactor struct {
	svc *service.RunService
}

func NewInteractor(svc *service.RunService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RunOutput, error) {
	run, err := i.svc.Record(ctx, domain.Run{
		SessionID: input.SessionID,
		Game:      strings.TrimSpace(input.Game),
		Score:     input.Score,
		Level:     input.Level,
		EndReason: input.EndReason,
		Seed:      input.Seed,
		StartedAt: input.StartedAt,
		EndedAt:   input.EndedAt,
	})
	if err != nil {
		return dto.RunOutput{}, err
	}
	return toRunOutput(run), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.RunOutput, error) {
	runs, err := i.svc.List(ctx, strings.TrimSpace(input.Game), input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunOutput, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunOutput(run))
	}
	return out, nil
}

func (i *Interactor) Best(ctx context.Context, game string) (dto.RunOutput, error) {
	run, err := i.svc.Best(ctx, strings.TrimSpace(game))
	if err != nil {
		return dto.RunOutput{}, err
	}
	return toRunOutput(run), nil
}

func toRunOutput(run domain.Run) dto.RunOutput {
	return dto.RunOutput{
		ID:        run.ID,
		SessionID: run.SessionID,
		Game:      run.Game,
		Score:     run.Score,
		Level:     run.Level,
		EndReason: run.EndReason,
		Seed:      run.Seed,
		StartedAt: run.StartedAt,
		EndedAt:   run.EndedAt,
		Duration:  run.Duration(),
	}
}
