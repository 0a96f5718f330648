package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	cheeroutadapter "pomoterm/internal/modules/cheer/adapter/out"
	cheerin "pomoterm/internal/modules/cheer/port/in"
	cheerservice "pomoterm/internal/modules/cheer/service"
	cheerusecase "pomoterm/internal/modules/cheer/usecase"
	historyinadapter "pomoterm/internal/modules/history/adapter/in"
	historyoutadapter "pomoterm/internal/modules/history/adapter/out"
	historyin "pomoterm/internal/modules/history/port/in"
	historyusecase "pomoterm/internal/modules/history/usecase"
	notifyinadapter "pomoterm/internal/modules/notify/adapter/in"
	notifyoutadapter "pomoterm/internal/modules/notify/adapter/out"
	notifyin "pomoterm/internal/modules/notify/port/in"
	notifyservice "pomoterm/internal/modules/notify/service"
	notifyusecase "pomoterm/internal/modules/notify/usecase"
	sessioninadapter "pomoterm/internal/modules/session/adapter/in"
	sessionoutadapter "pomoterm/internal/modules/session/adapter/out"
	sessionservice "pomoterm/internal/modules/session/service"
	sessionusecase "pomoterm/internal/modules/session/usecase"
	taskinadapter "pomoterm/internal/modules/task/adapter/in"
	taskoutadapter "pomoterm/internal/modules/task/adapter/out"
	taskin "pomoterm/internal/modules/task/port/in"
	taskservice "pomoterm/internal/modules/task/service"
	taskusecase "pomoterm/internal/modules/task/usecase"
	timerinadapter "pomoterm/internal/modules/timer/adapter/in"
	timeroutadapter "pomoterm/internal/modules/timer/adapter/out"
	timerin "pomoterm/internal/modules/timer/port/in"
	timerservice "pomoterm/internal/modules/timer/service"
	timerusecase "pomoterm/internal/modules/timer/usecase"
	"pomoterm/internal/platform/clock"
	"pomoterm/internal/platform/config"
	"pomoterm/internal/platform/id"
	"pomoterm/internal/platform/tx"
	uiapp "pomoterm/internal/ui/app"
)

// App holds the wired module surfaces. The CLI handlers serve cobra
// subcommands; the usecases feed the TUI directly.
type App struct {
	TimerCLI   timerinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	TaskCLI    taskinadapter.CLIHandler
	NotifyCLI  notifyinadapter.CLIHandler

	TimerUC   timerin.Usecase
	HistoryUC historyin.Usecase
	TaskUC    taskin.Usecase
	CheerUC   cheerin.Usecase
	NotifyUC  notifyin.Usecase

	PageSize int

	close func() error
}

// Close releases the sqlite projector handle.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	logger := hclog.New(&hclog.LoggerOptions{Name: "pomoterm", Level: hclog.Warn})

	projector, err := sessionoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	sessionSvc, err := sessionservice.NewSessionService(
		clk, tx.NoopManager{}, sessionoutadapter.NewFileSessionStore(cfg.SessionsPath), projector)
	if err != nil {
		_ = projector.Close()
		return nil, fmt.Errorf("new session service: %w", err)
	}
	sessionUC := sessionusecase.NewSessionUsecase(clk, ids, sessionSvc, cfg.Settings.TrashRetentionDays)

	cheerSvc, err := cheerservice.NewCheerService(clk, ids, cheeroutadapter.NewFileMessageStore(cfg.MessagesPath))
	if err != nil {
		_ = projector.Close()
		return nil, fmt.Errorf("new cheer service: %w", err)
	}
	cheerUC := cheerusecase.NewCheerUsecase(cheerSvc)

	notifySvc := notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.PluginsPath),
		notifyoutadapter.NewGRPCHost(),
		notifyoutadapter.NewBeeepNotifier(),
	)
	notifyUC := notifyusecase.NewNotifyUsecase(notifySvc)

	timerSvc, err := timerservice.NewTimerService(
		clk, timeroutadapter.NewFileStateStore(cfg.StateDir),
		cfg.Settings.WorkSeconds, cfg.Settings.BreakSeconds)
	if err != nil {
		_ = projector.Close()
		return nil, fmt.Errorf("new timer service: %w", err)
	}
	timerUC := timerusecase.NewTimerUsecase(
		timerSvc,
		timeroutadapter.NewSessionRecorderAdapter(sessionUC),
		timeroutadapter.NewCheerAnnouncerAdapter(cheerUC),
		timeroutadapter.NewNotifyAdapter(notifyUC),
		logger,
	)

	taskSvc, err := taskservice.NewTaskService(taskoutadapter.NewFileTaskStore(cfg.TasksPath))
	if err != nil {
		_ = projector.Close()
		return nil, fmt.Errorf("new task service: %w", err)
	}
	taskUC := taskusecase.NewTaskUsecase(clk, ids, taskSvc)

	historyUC := historyusecase.NewHistoryUsecase(clk, sessionUC, historyoutadapter.NewMarkdownExporter())

	return &App{
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		HistoryCLI: historyinadapter.NewCLIHandler(historyUC),
		TaskCLI:    taskinadapter.NewCLIHandler(taskUC),
		NotifyCLI:  notifyinadapter.NewCLIHandler(notifyUC),
		TimerUC:    timerUC,
		HistoryUC:  historyUC,
		TaskUC:     taskUC,
		CheerUC:    cheerUC,
		NotifyUC:   notifyUC,
		PageSize:   cfg.Settings.PageSize,
		close:      projector.Close,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerUC, app.HistoryUC, app.TaskUC, app.CheerUC, app.NotifyUC, app.PageSize)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
