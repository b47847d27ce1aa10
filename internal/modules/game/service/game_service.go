package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindgym/internal/modules/game/domain"
	"mindgym/internal/platform/clock"
	apperrors "mindgym/internal/platform/errors"
	"mindgym/internal/platform/id"
	"mindgym/internal/platform/random"
)

// generationAttempts is how many fresh draws a start action gets before the
// level is skipped.
const generationAttempts = 3

const (
	nothingToEvaluate = "Nothing to evaluate."
	resetHint         = "Reset to play again."
)

// GameService is the stage machine shared by every game.
type GameService struct {
	clock  clock.Clock
	idGen  id.Generator
	seeder random.Seeder
	logger *zap.Logger
}

func NewGameService(clock clock.Clock, idGen id.Generator, seeder random.Seeder, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{clock: clock, idGen: idGen, seeder: seeder, logger: logger}
}

func (s *GameService) Now() time.Time { return s.clock.Now() }

// NewSession creates a session in init with a freshly seeded random source.
func (s *GameService) NewSession(game domain.Game) (*domain.SessionState, error) {
	seed, err := s.seeder.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("seed session: %w", err)
	}
	state := domain.NewSessionState(s.idGen.New(), game.Rules, seed, random.New(seed), s.clock.Now())
	s.logger.Info("session created",
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.Int64("seed", seed),
		zap.Duration("budget", state.TimeBudget),
	)
	return state, nil
}

// Preview generates the puzzle a session seeded with seed would get at level.
func (s *GameService) Preview(game domain.Game, level int, seed int64) (domain.Puzzle, error) {
	return game.NewPuzzle(level, random.New(seed))
}

// Apply dispatches one action. The global timeout and level cap are settled
// before and after the action; a terminal session accepts nothing.
func (s *GameService) Apply(game domain.Game, state *domain.SessionState, action domain.Action) {
	now := s.clock.Now()
	rules := game.Rules
	wasOver := state.Over()
	if s.settle(rules, state, now) {
		if wasOver && action.Kind != domain.ActionTick {
			s.illegal(state, action, withResetHint(state.ResultMessage))
		}
		return
	}
	if err := action.Validate(); err != nil {
		state.ResultMessage = sentence(err.Error())
		return
	}
	s.advancePhase(state, now)

	switch action.Kind {
	case domain.ActionTick:
	case domain.ActionStartLevel:
		s.start(game, state, now)
	case domain.ActionToggleSelection:
		s.toggle(game, state, action.Index, now)
	case domain.ActionMoveTile:
		s.move(rules, state, action)
	case domain.ActionSubmitAnswer:
		s.submit(game, state, action.Answer, now)
	}
	s.settle(rules, state, now)
}

// Settle applies the transitions that follow from the clock alone: the global
// timeout, the level cap and an elapsed memorize window.
func (s *GameService) Settle(game domain.Game, state *domain.SessionState) {
	now := s.clock.Now()
	if s.settle(game.Rules, state, now) {
		return
	}
	s.advancePhase(state, now)
}

// settle forces game over on timeout or when the level cap is passed. It is
// safe to call any number of times.
func (s *GameService) settle(rules domain.Rules, state *domain.SessionState, now time.Time) bool {
	if state.Over() {
		return true
	}
	switch {
	case state.TimeLeft(now) <= 0:
		state.End(domain.ReasonTime, now)
	case rules.Capped(state.Level):
		state.End(domain.ReasonMaxLevel, now)
	default:
		return false
	}
	s.logger.Info("session over",
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.String("reason", string(state.EndReason)),
		zap.Int("score", state.Score),
		zap.Int("level", state.Level),
	)
	return true
}

// advancePhase closes an elapsed memorize window.
func (s *GameService) advancePhase(state *domain.SessionState, now time.Time) {
	if state.Stage != domain.StagePresent || state.PhaseDeadline.IsZero() || now.Before(state.PhaseDeadline) {
		return
	}
	state.Stage = domain.StageRespond
	state.PhaseDeadline = time.Time{}
	s.logger.Debug("memorize window closed",
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.Int("level", state.Level),
	)
}

func (s *GameService) start(game domain.Game, state *domain.SessionState, now time.Time) {
	if state.Stage != domain.StageInit {
		s.illegal(state, domain.StartLevel(), "A puzzle is already in play.")
		return
	}
	var lastErr error
	for attempt := 1; attempt <= generationAttempts; attempt++ {
		puzzle, err := game.NewPuzzle(state.Level, state.Rand())
		if err == nil {
			state.Present(puzzle, now)
			s.logger.Debug("level started",
				zap.String("game", string(state.Kind)),
				zap.String("session_id", state.ID),
				zap.Int("level", state.Level),
				zap.Int("attempt", attempt),
			)
			return
		}
		lastErr = err
		if !errors.Is(err, apperrors.ErrGenerationInfeasible) {
			break
		}
	}
	skipped := state.Level
	state.Level++
	state.ResultMessage = fmt.Sprintf("Level %d skipped: %v.", skipped, lastErr)
	s.logger.Warn("level skipped",
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.Int("level", skipped),
		zap.Error(lastErr),
	)
}

func (s *GameService) toggle(game domain.Game, state *domain.SessionState, index int, now time.Time) {
	rules := game.Rules
	if rules.SelectLimit == 0 || state.Stage != domain.StagePresent || state.Puzzle == nil {
		s.illegal(state, domain.Toggle(index), "Nothing to select right now.")
		return
	}
	if err := state.ToggleSelection(index, rules.SelectLimit, state.Puzzle.Options()); err != nil {
		state.ResultMessage = sentence(err.Error())
		return
	}
	state.ResultMessage = ""
	if rules.AutoSubmit && len(state.Selection) == rules.SelectLimit {
		s.submit(game, state, "", now)
	}
}

func (s *GameService) move(rules domain.Rules, state *domain.SessionState, action domain.Action) {
	if !rules.Arrange || state.Stage != domain.StagePresent || state.Puzzle == nil {
		s.illegal(state, action, "Nothing to rearrange right now.")
		return
	}
	if err := state.MoveTile(action.Index, action.Direction); err != nil {
		state.ResultMessage = sentence(err.Error())
		return
	}
	state.ResultMessage = ""
}

func (s *GameService) submit(game domain.Game, state *domain.SessionState, answer string, now time.Time) {
	rules := game.Rules
	switch {
	case state.Puzzle == nil:
		s.illegal(state, domain.Submit(answer), nothingToEvaluate)
		return
	case rules.Memorize && state.Stage == domain.StagePresent:
		s.illegal(state, domain.Submit(answer), "Still memorizing. Wait for the puzzle to hide.")
		return
	case state.Stage != domain.StagePresent && state.Stage != domain.StageRespond:
		s.illegal(state, domain.Submit(answer), nothingToEvaluate)
		return
	}

	outcome := state.Puzzle.Evaluate(state.Response(answer))
	if outcome.Rejected {
		state.ResultMessage = outcome.Detail
		return
	}
	s.logger.Info("answer evaluated",
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.Int("level", state.Level),
		zap.Bool("correct", outcome.Correct),
	)

	if outcome.Correct {
		state.Score++
		state.Level++
		if rules.AutoAdvance && !rules.Capped(state.Level) {
			state.Retire()
			s.start(game, state, now)
			if state.Stage == domain.StagePresent {
				state.ResultMessage = outcome.Detail
			}
			return
		}
		state.Retire()
		state.ResultMessage = outcome.Detail
		return
	}

	switch rules.OnWrong {
	case domain.PolicyRetryPuzzle:
		state.Selection = nil
		state.ResultMessage = outcome.Detail
	case domain.PolicyGameOver:
		state.End(domain.ReasonMiss, now)
		state.ResultMessage = outcome.Detail + " Game over."
		s.logger.Info("session over",
			zap.String("game", string(state.Kind)),
			zap.String("session_id", state.ID),
			zap.String("reason", string(state.EndReason)),
			zap.Int("score", state.Score),
			zap.Int("level", state.Level),
		)
	default:
		state.Retire()
		state.ResultMessage = outcome.Detail
	}
}

// illegal leaves the state alone apart from the diagnostic message.
func (s *GameService) illegal(state *domain.SessionState, action domain.Action, message string) {
	state.ResultMessage = message
	s.logger.Debug(apperrors.ErrIllegalTransition.Error(),
		zap.String("game", string(state.Kind)),
		zap.String("session_id", state.ID),
		zap.String("stage", string(state.Stage)),
		zap.String("action", string(action.Kind)),
	)
}

// withResetHint keeps the message that ended the session and points at reset.
func withResetHint(msg string) string {
	switch {
	case msg == "":
		return "Game over. " + resetHint
	case strings.HasSuffix(msg, resetHint):
		return msg
	}
	return msg + " " + resetHint
}

func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
