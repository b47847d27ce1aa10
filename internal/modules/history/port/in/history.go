package in

import (
	"context"

	"mindgym/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RunOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.RunOutput, error)
	Best(ctx context.Context, game string) (dto.RunOutput, error)
}
