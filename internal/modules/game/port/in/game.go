package in

import (
	"context"

	"mindgym/internal/modules/game/dto"
)

type Usecase interface {
	StartSession(ctx context.Context, game string) (dto.HandleOutput, error)
	Dispatch(ctx context.Context, input dto.ActionInput) (dto.SnapshotOutput, error)
	Snapshot(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	Reset(ctx context.Context, game string) error
	ResetAll(ctx context.Context) error
	Games(ctx context.Context) ([]dto.GameInfo, error)
	Preview(ctx context.Context, input dto.PreviewInput) (dto.PreviewOutput, error)
}
