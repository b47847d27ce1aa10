package in

import (
	"context"

	"mindgym/internal/modules/game/dto"
	gamein "mindgym/internal/modules/game/port/in"
)

type CLIHandler struct {
	usecase gamein.Usecase
}

func NewCLIHandler(usecase gamein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Games(ctx context.Context) ([]dto.GameInfo, error) {
	return h.usecase.Games(ctx)
}

func (h CLIHandler) Preview(ctx context.Context, game string, level int, seed int64) (dto.PreviewOutput, error) {
	return h.usecase.Preview(ctx, dto.PreviewInput{Game: game, Level: level, Seed: seed})
}
