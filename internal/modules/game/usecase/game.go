package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindgym/internal/modules/game/domain"
	"mindgym/internal/modules/game/dto"
	gamein "mindgym/internal/modules/game/port/in"
	gameout "mindgym/internal/modules/game/port/out"
	"mindgym/internal/modules/game/service"
	historydto "mindgym/internal/modules/history/dto"
	historyin "mindgym/internal/modules/history/port/in"
	apperrors "mindgym/internal/platform/errors"
)

// Interactor serializes every session operation; a session is only ever
// touched by one dispatch at a time.
type Interactor struct {
	mu      sync.Mutex
	svc     *service.GameService
	catalog *domain.Catalog
	store   gameout.SessionStore
	history historyin.Usecase
	logger  *zap.Logger
}

func NewInteractor(svc *service.GameService, catalog *domain.Catalog, store gameout.SessionStore, history historyin.Usecase, logger *zap.Logger) gamein.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, catalog: catalog, store: store, history: history, logger: logger}
}

// StartSession returns the live session of game, creating one on first use.
func (i *Interactor) StartSession(ctx context.Context, game string) (dto.HandleOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	g, err := i.lookup(game)
	if err != nil {
		return dto.HandleOutput{}, err
	}
	existing, err := i.store.FindByKind(ctx, g.Rules.Kind)
	if err == nil {
		if err := i.settle(ctx, g, existing); err != nil {
			return dto.HandleOutput{}, err
		}
		return dto.HandleOutput{SessionID: existing.ID, Game: string(existing.Kind)}, nil
	}
	if !errors.Is(err, apperrors.ErrSessionNotFound) {
		return dto.HandleOutput{}, err
	}
	state, err := i.svc.NewSession(g)
	if err != nil {
		return dto.HandleOutput{}, err
	}
	if err := i.store.Put(ctx, state); err != nil {
		return dto.HandleOutput{}, err
	}
	return dto.HandleOutput{SessionID: state.ID, Game: string(state.Kind), Created: true}, nil
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.ActionInput) (dto.SnapshotOutput, error) {
	action, err := toAction(input)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	state, err := i.store.Get(ctx, input.SessionID)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	g, err := i.catalog.Lookup(state.Kind)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	i.svc.Apply(g, state, action)
	i.record(ctx, state)
	if err := i.store.Put(ctx, state); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return snapshotOf(g, state, i.svc.Now()), nil
}

func (i *Interactor) Snapshot(ctx context.Context, sessionID string) (dto.SnapshotOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	state, err := i.store.Get(ctx, sessionID)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	g, err := i.catalog.Lookup(state.Kind)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	if err := i.settle(ctx, g, state); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return snapshotOf(g, state, i.svc.Now()), nil
}

// settle brings a stored session up to date with the clock before it is
// read, journaling it if that finished it.
func (i *Interactor) settle(ctx context.Context, g domain.Game, state *domain.SessionState) error {
	i.svc.Settle(g, state)
	i.record(ctx, state)
	return i.store.Put(ctx, state)
}

// Reset drops the session of game; the next StartSession begins afresh.
func (i *Interactor) Reset(ctx context.Context, game string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	g, err := i.lookup(game)
	if err != nil {
		return err
	}
	return i.store.DeleteKind(ctx, g.Rules.Kind)
}

func (i *Interactor) ResetAll(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Clear(ctx)
}

func (i *Interactor) Games(context.Context) ([]dto.GameInfo, error) {
	games := i.catalog.Games()
	out := make([]dto.GameInfo, 0, len(games))
	for _, g := range games {
		r := g.Rules
		out = append(out, dto.GameInfo{
			Game:       string(r.Kind),
			Title:      r.Title,
			Summary:    r.Summary,
			TimeBudget: r.TimeBudget,
			MaxLevel:   r.MaxLevel,
			Memorize:   r.Memorize,
			OnWrong:    string(r.OnWrong),
		})
	}
	return out, nil
}

func (i *Interactor) Preview(_ context.Context, input dto.PreviewInput) (dto.PreviewOutput, error) {
	g, err := i.lookup(input.Game)
	if err != nil {
		return dto.PreviewOutput{}, err
	}
	if input.Level < 1 {
		return dto.PreviewOutput{}, fmt.Errorf("%w: level must be at least 1, got %d", apperrors.ErrInvalidInput, input.Level)
	}
	params, err := domain.Params(g.Rules.Kind, input.Level)
	if err != nil {
		return dto.PreviewOutput{}, err
	}
	puzzle, err := i.svc.Preview(g, input.Level, input.Seed)
	if err != nil {
		return dto.PreviewOutput{}, err
	}
	var order []int
	if a, ok := puzzle.(domain.Arrangeable); ok {
		order = a.Scrambled()
	}
	return dto.PreviewOutput{
		Game:     string(g.Rules.Kind),
		Level:    input.Level,
		Seed:     input.Seed,
		Params:   fmt.Sprintf("%+v", params),
		Puzzle:   viewOf(puzzle, domain.StagePresent, nil, order, false),
		Solution: describeSolution(puzzle),
	}, nil
}

func (i *Interactor) lookup(game string) (domain.Game, error) {
	kind, err := domain.ParseKind(game)
	if err != nil {
		return domain.Game{}, err
	}
	return i.catalog.Lookup(kind)
}

// record journals a finished session once. Journal failures are logged and
// never reach the player.
func (i *Interactor) record(ctx context.Context, state *domain.SessionState) {
	if !state.Over() || state.Recorded || i.history == nil {
		return
	}
	state.Recorded = true
	_, err := i.history.Record(ctx, historydto.RecordInput{
		SessionID: state.ID,
		Game:      string(state.Kind),
		Score:     state.Score,
		Level:     state.Level,
		EndReason: string(state.EndReason),
		Seed:      state.Seed,
		StartedAt: state.StartedAt,
		EndedAt:   state.EndedAt,
	})
	if err != nil {
		i.logger.Warn("journal run failed",
			zap.String("game", string(state.Kind)),
			zap.String("session_id", state.ID),
			zap.Error(err),
		)
	}
}

func toAction(input dto.ActionInput) (domain.Action, error) {
	switch domain.ActionKind(strings.ToLower(strings.TrimSpace(input.Kind))) {
	case domain.ActionStartLevel:
		return domain.StartLevel(), nil
	case domain.ActionToggleSelection:
		return domain.Toggle(input.Index), nil
	case domain.ActionMoveTile:
		return domain.Move(input.Index, domain.Direction(strings.ToLower(input.Direction))), nil
	case domain.ActionSubmitAnswer:
		return domain.Submit(input.Answer), nil
	case domain.ActionTick:
		return domain.Tick(), nil
	default:
		return domain.Action{}, fmt.Errorf("%w: unsupported action %q", apperrors.ErrInvalidInput, input.Kind)
	}
}

func snapshotOf(g domain.Game, state *domain.SessionState, now time.Time) dto.SnapshotOutput {
	out := dto.SnapshotOutput{
		SessionID:     state.ID,
		Game:          string(state.Kind),
		Title:         g.Rules.Title,
		Stage:         string(state.Stage),
		Level:         state.Level,
		MaxLevel:      g.Rules.MaxLevel,
		Score:         state.Score,
		TimeLeft:      state.TimeLeft(now),
		PhaseLeft:     state.PhaseLeft(now),
		ResultMessage: state.ResultMessage,
		EndReason:     string(state.EndReason),
		Seed:          state.Seed,
		Selection:     append([]int(nil), state.Selection...),
	}
	if state.Puzzle != nil {
		out.Puzzle = viewOf(state.Puzzle, state.Stage, state.Selection, state.Arrangement, g.Rules.Memorize)
	}
	return out
}

// viewOf renders puzzle for stage. Once a memorize window closes the
// memorized items are withheld.
func viewOf(puzzle domain.Puzzle, stage domain.Stage, selection, order []int, memorize bool) dto.PuzzleView {
	view := dto.PuzzleView{Live: true, Hidden: memorize && stage == domain.StageRespond}
	switch p := puzzle.(type) {
	case domain.DigitspanPuzzle:
		if !view.Hidden {
			view.Sequence = p.Sequence
		}
	case domain.ShapedancePuzzle:
		picked := map[int]bool{}
		for _, idx := range selection {
			picked[idx] = true
		}
		for idx, pattern := range p.Patterns {
			cube := dto.CubeView{Selected: picked[idx]}
			if idx < len(p.Transforms) {
				cube.Rotation = p.Transforms[idx].Rotation
				cube.Mirror = p.Transforms[idx].Mirror
			}
			for _, s := range pattern {
				cube.Pattern = append(cube.Pattern, symbolView(s))
			}
			view.Cubes = append(view.Cubes, cube)
		}
	case domain.NumerosityPuzzle:
		view.Operator = string(p.Operator)
		view.Target = p.Target
		view.Pool = append([]int(nil), p.Pool...)
	case domain.PathfinderPuzzle:
		for _, id := range order {
			tile, ok := p.Tile(id)
			if !ok {
				continue
			}
			tv := dto.TileView{ID: tile.ID, Type: tile.Type}
			for _, e := range tile.OpenEdges {
				tv.OpenEdges = append(tv.OpenEdges, string(e))
			}
			view.Tiles = append(view.Tiles, tv)
		}
	case domain.FlashbackPuzzle:
		if view.Hidden {
			probe := symbolView(p.Probe)
			view.Probe = &probe
			break
		}
		for _, s := range p.Sequence {
			view.Shapes = append(view.Shapes, symbolView(s))
		}
	}
	return view
}

func symbolView(s domain.Symbol) dto.SymbolView {
	return dto.SymbolView{Shape: s.Shape, Color: s.Color}
}

func describeSolution(puzzle domain.Puzzle) string {
	switch p := puzzle.(type) {
	case domain.DigitspanPuzzle:
		return p.Sequence
	case domain.ShapedancePuzzle:
		return fmt.Sprintf("cubes %d and %d", p.MatchingPair[0]+1, p.MatchingPair[1]+1)
	case domain.NumerosityPuzzle:
		a, b, c := p.Operands[0], p.Operands[1], p.Operands[2]
		return fmt.Sprintf("%d %s %d %s %d = %d", a, p.Operator, b, p.Operator, c, p.Target)
	case domain.PathfinderPuzzle:
		ids := make([]string, 0, len(p.Correct))
		for _, t := range p.Correct {
			ids = append(ids, fmt.Sprint(t.ID))
		}
		return "tiles " + strings.Join(ids, ", ")
	case domain.FlashbackPuzzle:
		if p.Seen {
			return fmt.Sprintf("%s was seen", p.Probe)
		}
		return fmt.Sprintf("%s is new", p.Probe)
	}
	return fmt.Sprintf("%+v", puzzle.Solution())
}
