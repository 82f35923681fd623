package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	trackinginadapter "worklog/internal/modules/tracking/adapter/in"
	trackingoutadapter "worklog/internal/modules/tracking/adapter/out"
	trackingservice "worklog/internal/modules/tracking/service"
	trackingusecase "worklog/internal/modules/tracking/usecase"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/config"
	"worklog/internal/platform/id"
	"worklog/internal/platform/logging"
	uiapp "worklog/internal/ui/app"
)

type App struct {
	Config     config.Config
	Logger     *slog.Logger
	TrackerTUI trackinginadapter.TUIHandler
	HistoryCLI trackinginadapter.CLIHandler

	closers []io.Closer
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	logger = logging.OrDiscard(logger)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	store := trackingservice.NewSessionStore(clk, ids, trackingoutadapter.NewJSONSessionStore(cfg.StatePath))
	projector := trackingoutadapter.NewLazySessionProjector(cfg.DBPath)

	dashboardUC := trackingusecase.NewInteractor(
		trackingservice.NewTracker(store, cfg.Location),
		logger.With("component", "tracker"),
	)
	historyUC := trackingusecase.NewHistoryInteractor(
		store,
		projector,
		trackingoutadapter.NewMarkdownDayExporter(cfg.ExportDir),
		cfg.Location,
		logger.With("component", "history"),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		TrackerTUI: trackinginadapter.NewTUIHandler(dashboardUC),
		HistoryCLI: trackinginadapter.NewCLIHandler(historyUC),
		closers:    []io.Closer{projector},
	}, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI boots the tracker and blocks until the dashboard exits. A session
// log that cannot be read aborts before the terminal is taken over.
func RunTUI(ctx context.Context, app *App) error {
	if err := app.TrackerTUI.Boot(ctx); err != nil {
		return fmt.Errorf("start tracker: %w", err)
	}
	model := uiapp.NewModel(app.TrackerTUI, app.Config.TickInterval)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil {
		app.Logger.Error("dashboard exited", "error", err)
	}
	return err
}
