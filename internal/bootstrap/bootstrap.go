package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	gameinadapter "mindgym/internal/modules/game/adapter/in"
	gameoutadapter "mindgym/internal/modules/game/adapter/out"
	"mindgym/internal/modules/game/domain"
	gameservice "mindgym/internal/modules/game/service"
	gameusecase "mindgym/internal/modules/game/usecase"
	historyinadapter "mindgym/internal/modules/history/adapter/in"
	historyoutadapter "mindgym/internal/modules/history/adapter/out"
	historyservice "mindgym/internal/modules/history/service"
	historyusecase "mindgym/internal/modules/history/usecase"
	"mindgym/internal/platform/clock"
	"mindgym/internal/platform/config"
	"mindgym/internal/platform/id"
	"mindgym/internal/platform/logging"
	"mindgym/internal/platform/random"
	uiapp "mindgym/internal/ui/app"
)

type App struct {
	GameCLI    gameinadapter.CLIHandler
	GameTUI    gameinadapter.TUIHandler
	HistoryCLI historyinadapter.CLIHandler

	TickInterval time.Duration
	Logger       *zap.Logger

	closers []func() error
}

type options struct {
	seeder random.Seeder
}

type Option func(*options)

// WithSeed makes every new session use seed, for reproducible runs.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seeder = random.FixedSeeder(seed) }
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{seeder: random.CryptoSeeder{}}
	for _, opt := range opts {
		opt(&o)
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app, err := build(cfg, o, logger)
	if err != nil {
		logger.Error("bootstrap failed", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

func build(cfg config.Config, o options, logger *zap.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	templates, err := gameoutadapter.NewYAMLTemplateSource(cfg.DataDir).LoadTemplates(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load pathfinder templates: %w", err)
	}
	catalog, err := domain.NewCatalog(templates, budgets(cfg.Budgets))
	if err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}

	runStore, err := historyoutadapter.NewSQLiteRunStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new run store: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewRunService(clk, ids, runStore))

	gameUC := gameusecase.NewInteractor(
		gameservice.NewGameService(clk, ids, o.seeder, logger),
		catalog,
		gameoutadapter.NewMemorySessionStore(),
		historyUC,
		logger,
	)

	return &App{
		GameCLI:      gameinadapter.NewCLIHandler(gameUC),
		GameTUI:      gameinadapter.NewTUIHandler(gameUC),
		HistoryCLI:   historyinadapter.NewCLIHandler(historyUC),
		TickInterval: cfg.TickInterval,
		Logger:       logger,
		closers:      []func() error{runStore.Close},
	}, nil
}

// Close releases the journal and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App, initial string) error {
	games, err := app.GameTUI.Games(context.Background())
	if err != nil {
		return err
	}
	model := uiapp.NewModel(games, app.GameTUI, app.HistoryCLI, app.TickInterval, initial)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func budgets(b config.Budgets) map[domain.Kind]time.Duration {
	return map[domain.Kind]time.Duration{
		domain.KindDigitspan:  b.Digitspan,
		domain.KindShapedance: b.Shapedance,
		domain.KindNumerosity: b.Numerosity,
		domain.KindPathfinder: b.Pathfinder,
		domain.KindFlashback:  b.Flashback,
	}
}
