package in

import (
	"context"

	"mindgym/internal/modules/game/dto"
	gamein "mindgym/internal/modules/game/port/in"
)

type TUIHandler struct {
	usecase gamein.Usecase
}

func NewTUIHandler(usecase gamein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Games(ctx context.Context) ([]dto.GameInfo, error) {
	return h.usecase.Games(ctx)
}

func (h TUIHandler) Open(ctx context.Context, game string) (dto.SnapshotOutput, error) {
	handle, err := h.usecase.StartSession(ctx, game)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	return h.usecase.Snapshot(ctx, handle.SessionID)
}

func (h TUIHandler) Start(ctx context.Context, sessionID string) (dto.SnapshotOutput, error) {
	return h.dispatch(ctx, dto.ActionInput{SessionID: sessionID, Kind: "start"})
}

func (h TUIHandler) Toggle(ctx context.Context, sessionID string, index int) (dto.SnapshotOutput, error) {
	return h.dispatch(ctx, dto.ActionInput{SessionID: sessionID, Kind: "toggle", Index: index})
}

func (h TUIHandler) Move(ctx context.Context, sessionID string, index int, direction string) (dto.SnapshotOutput, error) {
	return h.dispatch(ctx, dto.ActionInput{SessionID: sessionID, Kind: "move", Index: index, Direction: direction})
}

func (h TUIHandler) Submit(ctx context.Context, sessionID, answer string) (dto.SnapshotOutput, error) {
	return h.dispatch(ctx, dto.ActionInput{SessionID: sessionID, Kind: "submit", Answer: answer})
}

func (h TUIHandler) Tick(ctx context.Context, sessionID string) (dto.SnapshotOutput, error) {
	return h.dispatch(ctx, dto.ActionInput{SessionID: sessionID, Kind: "tick"})
}

func (h TUIHandler) Reset(ctx context.Context, game string) error {
	return h.usecase.Reset(ctx, game)
}

func (h TUIHandler) ResetAll(ctx context.Context) error {
	return h.usecase.ResetAll(ctx)
}

func (h TUIHandler) dispatch(ctx context.Context, input dto.ActionInput) (dto.SnapshotOutput, error) {
	return h.usecase.Dispatch(ctx, input)
}
