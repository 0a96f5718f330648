package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"pomoterm/internal/modules/timer/domain"
	"pomoterm/internal/modules/timer/dto"
	timerout "pomoterm/internal/modules/timer/port/out"
	"pomoterm/internal/modules/timer/service"
	apperrors "pomoterm/internal/platform/errors"
)

const notificationTitle = "Pomodoro Timer"

// TimerUsecase orchestrates the countdowns. On a completing tick it records
// the finished interval, announces it, fires the desktop notification, and
// only then rearms the countdown, so the session log always holds the record
// before the reset becomes observable.
type TimerUsecase struct {
	timers    *service.TimerService
	recorder  timerout.SessionRecorder
	announcer timerout.CompletionAnnouncer
	notifier  timerout.Notifier
	logger    hclog.Logger
}

func NewTimerUsecase(timers *service.TimerService, recorder timerout.SessionRecorder, announcer timerout.CompletionAnnouncer, notifier timerout.Notifier, logger hclog.Logger) *TimerUsecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &TimerUsecase{
		timers:    timers,
		recorder:  recorder,
		announcer: announcer,
		notifier:  notifier,
		logger:    logger.Named("timer"),
	}
}

func (u *TimerUsecase) Status(ctx context.Context) (dto.StatusOutput, error) {
	countdowns := u.timers.All(ctx)
	out := dto.StatusOutput{Timers: make([]dto.TimerOutput, 0, len(countdowns))}
	for _, c := range countdowns {
		out.Timers = append(out.Timers, toOutput(c))
	}
	return out, nil
}

func (u *TimerUsecase) Start(ctx context.Context, mode string) (dto.TimerOutput, error) {
	c, err := u.timers.Start(ctx, domain.Mode(mode))
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toOutput(c), nil
}

func (u *TimerUsecase) Pause(ctx context.Context, mode string) (dto.TimerOutput, error) {
	c, err := u.timers.Pause(ctx, domain.Mode(mode))
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toOutput(c), nil
}

func (u *TimerUsecase) Reset(ctx context.Context, mode string) (dto.TimerOutput, error) {
	c, err := u.timers.Reset(ctx, domain.Mode(mode))
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toOutput(c), nil
}

// SetGoal edits the goal for the next interval. The goal is locked while the
// countdown runs.
func (u *TimerUsecase) SetGoal(ctx context.Context, input dto.GoalInput) (dto.TimerOutput, error) {
	mode := domain.Mode(input.Mode)
	current, err := u.timers.Get(ctx, mode)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if current.Running {
		return dto.TimerOutput{}, apperrors.ErrTimerRunning
	}
	c, err := u.timers.SetGoal(ctx, mode, strings.TrimSpace(input.Goal))
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toOutput(c), nil
}

func (u *TimerUsecase) Tick(ctx context.Context, mode string) (dto.TickOutput, error) {
	ticked, done, err := u.timers.Tick(ctx, domain.Mode(mode))
	if err != nil {
		return dto.TickOutput{}, err
	}
	if !done {
		return dto.TickOutput{Timer: toOutput(ticked)}, nil
	}
	sessionID, err := u.complete(ctx, ticked)
	if err != nil {
		return dto.TickOutput{Timer: toOutput(ticked), Completed: true}, err
	}
	rearmed, err := u.timers.Rollover(ctx, ticked.Mode)
	if err != nil {
		return dto.TickOutput{Timer: toOutput(ticked), Completed: true, SessionID: sessionID}, err
	}
	return dto.TickOutput{Timer: toOutput(rearmed), Completed: true, SessionID: sessionID}, nil
}

// complete records the finished interval and fans out the celebration. The
// record is mandatory; the announcement and the desktop notification are
// best effort and only logged.
func (u *TimerUsecase) complete(ctx context.Context, c domain.Countdown) (string, error) {
	if c.SessionStart == nil {
		return "", fmt.Errorf("%w: finished countdown has no interval start", apperrors.ErrInvalidState)
	}
	sessionID, err := u.recorder.RecordCompleted(ctx, string(c.Mode), *c.SessionStart, c.DurationSeconds, c.Goal)
	if err != nil {
		return "", fmt.Errorf("record completed %s interval: %w", c.Mode, err)
	}
	if err := u.announcer.AnnounceCompletion(ctx, string(c.Mode)); err != nil {
		u.logger.Warn("completion announcement failed", "mode", c.Mode, "error", err)
	}
	if err := u.notifier.Notify(ctx, notificationTitle, completionBody(c.Mode)); err != nil {
		u.logger.Warn("desktop notification failed", "mode", c.Mode, "error", err)
	}
	return sessionID, nil
}

func completionBody(mode domain.Mode) string {
	if mode == domain.ModeBreak {
		return "Break session completed!"
	}
	return "Work session completed!"
}

func toOutput(c domain.Countdown) dto.TimerOutput {
	return dto.TimerOutput{
		Mode:            string(c.Mode),
		DurationSeconds: c.DurationSeconds,
		TimeLeftSeconds: c.TimeLeftSeconds,
		Running:         c.Running,
		SessionStart:    c.SessionStart,
		Goal:            c.Goal,
	}
}
