package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameout "mindgym/internal/modules/game/adapter/out"
	"mindgym/internal/modules/game/domain"
	"mindgym/internal/modules/game/dto"
	gamein "mindgym/internal/modules/game/port/in"
	"mindgym/internal/modules/game/service"
	"mindgym/internal/modules/game/usecase"
	historydto "mindgym/internal/modules/history/dto"
	apperrors "mindgym/internal/platform/errors"
	"mindgym/internal/platform/random"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("session-%d", g.n)
}

type fakeHistory struct {
	recorded []historydto.RecordInput
	err      error
}

func (h *fakeHistory) Record(_ context.Context, input historydto.RecordInput) (historydto.RunOutput, error) {
	h.recorded = append(h.recorded, input)
	return historydto.RunOutput{}, h.err
}

func (h *fakeHistory) List(context.Context, historydto.ListInput) ([]historydto.RunOutput, error) {
	return nil, nil
}

func (h *fakeHistory) Best(context.Context, string) (historydto.RunOutput, error) {
	return historydto.RunOutput{}, apperrors.ErrNotFound
}

type fixture struct {
	uc      gamein.Usecase
	clock   *fakeClock
	history *fakeHistory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	templates, err := gameout.NewYAMLTemplateSource("").LoadTemplates(context.Background())
	require.NoError(t, err)
	catalog, err := domain.NewCatalog(templates, map[domain.Kind]time.Duration{domain.KindNumerosity: 10 * time.Second})
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)}
	history := &fakeHistory{}
	svc := service.NewGameService(clk, &seqID{}, random.FixedSeeder(99), nil)
	uc := usecase.NewInteractor(svc, catalog, gameout.NewMemorySessionStore(), history, nil)
	return fixture{uc: uc, clock: clk, history: history}
}

func TestStartSessionReusesSessionPerGame(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.StartSession(ctx, "digitspan")
	require.NoError(t, err)
	assert.True(t, first.Created)

	again, err := f.uc.StartSession(ctx, " DIGITSPAN ")
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.SessionID, again.SessionID)

	other, err := f.uc.StartSession(ctx, "flashback")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, other.SessionID)

	_, err = f.uc.StartSession(ctx, "chess")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownGame))
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Dispatch(ctx, dto.ActionInput{SessionID: "missing", Kind: "tick"})
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))

	h, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)
	_, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "jump"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestResetDiscardsSessions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	digits, err := f.uc.StartSession(ctx, "digitspan")
	require.NoError(t, err)
	shapes, err := f.uc.StartSession(ctx, "shapedance")
	require.NoError(t, err)

	require.NoError(t, f.uc.Reset(ctx, "digitspan"))
	_, err = f.uc.Snapshot(ctx, digits.SessionID)
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
	_, err = f.uc.Snapshot(ctx, shapes.SessionID)
	assert.NoError(t, err)

	fresh, err := f.uc.StartSession(ctx, "digitspan")
	require.NoError(t, err)
	assert.True(t, fresh.Created)
	assert.NotEqual(t, digits.SessionID, fresh.SessionID)

	require.NoError(t, f.uc.ResetAll(ctx))
	_, err = f.uc.Snapshot(ctx, shapes.SessionID)
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
	_, err = f.uc.Snapshot(ctx, fresh.SessionID)
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
}

func TestSnapshotHidesMemorizedSequence(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "digitspan")
	require.NoError(t, err)

	snap, err := f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "start"})
	require.NoError(t, err)
	require.Equal(t, "present", snap.Stage)
	assert.Len(t, snap.Puzzle.Sequence, 2)
	assert.False(t, snap.Puzzle.Hidden)
	assert.Equal(t, 3*time.Second, snap.PhaseLeft)
	assert.Equal(t, int64(99), snap.Seed)
	assert.Equal(t, 18, snap.MaxLevel)

	f.clock.now = f.clock.now.Add(3 * time.Second)
	snap, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "tick"})
	require.NoError(t, err)
	assert.Equal(t, "respond", snap.Stage)
	assert.True(t, snap.Puzzle.Hidden)
	assert.Empty(t, snap.Puzzle.Sequence)
	assert.Equal(t, 177*time.Second, snap.TimeLeft)
}

func TestFlashbackSnapshotShowsProbeOnlyAfterWindow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "flashback")
	require.NoError(t, err)

	snap, err := f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "start"})
	require.NoError(t, err)
	assert.Len(t, snap.Puzzle.Shapes, 2)
	assert.Nil(t, snap.Puzzle.Probe)

	f.clock.now = f.clock.now.Add(time.Minute)
	snap, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "tick"})
	require.NoError(t, err)
	assert.Empty(t, snap.Puzzle.Shapes)
	require.NotNil(t, snap.Puzzle.Probe)
}

func TestFinishedSessionIsJournaledOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(10 * time.Second)
	snap, err := f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "tick"})
	require.NoError(t, err)
	assert.Equal(t, "gameover", snap.Stage)
	assert.Equal(t, "time", snap.EndReason)
	assert.Zero(t, snap.TimeLeft)

	for range 3 {
		_, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "tick"})
		require.NoError(t, err)
	}
	require.Len(t, f.history.recorded, 1)
	run := f.history.recorded[0]
	assert.Equal(t, h.SessionID, run.SessionID)
	assert.Equal(t, "numerosity", run.Game)
	assert.Equal(t, "time", run.EndReason)
	assert.Equal(t, 1, run.Level)
	assert.Equal(t, int64(99), run.Seed)
}

func TestJournalFailureDoesNotReachPlayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.history.err = errors.New("disk full")
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(time.Hour)
	snap, err := f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "tick"})
	require.NoError(t, err)
	assert.Equal(t, "Time's up!", snap.ResultMessage)
	assert.Len(t, f.history.recorded, 1)
}

func TestGamesAndPreview(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	games, err := f.uc.Games(ctx)
	require.NoError(t, err)
	require.Len(t, games, 5)
	assert.Equal(t, "digitspan", games[0].Game)
	assert.Equal(t, 10*time.Second, games[2].TimeBudget)
	assert.Equal(t, "game_over", games[4].OnWrong)

	a, err := f.uc.Preview(ctx, dto.PreviewInput{Game: "pathfinder", Level: 3, Seed: 42})
	require.NoError(t, err)
	b, err := f.uc.Preview(ctx, dto.PreviewInput{Game: "pathfinder", Level: 3, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Puzzle.Tiles)
	assert.Contains(t, a.Solution, "tiles ")
	assert.Contains(t, a.Params, "MaxTiles:4")

	_, err = f.uc.Preview(ctx, dto.PreviewInput{Game: "digitspan", Level: 0, Seed: 1})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestReadsSettleExpiredSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)
	_, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "start"})
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(11 * time.Second)
	snap, err := f.uc.Snapshot(ctx, h.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "gameover", snap.Stage)
	assert.Equal(t, "time", snap.EndReason)
	assert.False(t, snap.Puzzle.Live)
	require.Len(t, f.history.recorded, 1)

	again, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, h.SessionID, again.SessionID)
	_, err = f.uc.Snapshot(ctx, h.SessionID)
	require.NoError(t, err)
	assert.Len(t, f.history.recorded, 1)
}

func TestReopenSettlesSessionThatExpiredUnseen(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)
	_, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "start"})
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(time.Minute)
	_, err = f.uc.StartSession(ctx, "numerosity")
	require.NoError(t, err)
	require.Len(t, f.history.recorded, 1)
	assert.Equal(t, "time", f.history.recorded[0].EndReason)
}

func TestSnapshotClosesElapsedMemorizeWindow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.uc.StartSession(ctx, "digitspan")
	require.NoError(t, err)
	_, err = f.uc.Dispatch(ctx, dto.ActionInput{SessionID: h.SessionID, Kind: "start"})
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(3 * time.Second)
	snap, err := f.uc.Snapshot(ctx, h.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "respond", snap.Stage)
	assert.True(t, snap.Puzzle.Hidden)
	assert.Empty(t, snap.Puzzle.Sequence)
}
