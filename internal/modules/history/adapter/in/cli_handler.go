package in

import (
	"context"

	"mindgym/internal/modules/history/dto"
	historyin "mindgym/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, game string, limit int) ([]dto.RunOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Game: game, Limit: limit})
}

func (h CLIHandler) Best(ctx context.Context, game string) (dto.RunOutput, error) {
	return h.usecase.Best(ctx, game)
}
