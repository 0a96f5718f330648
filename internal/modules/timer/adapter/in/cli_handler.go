package in

import (
	"context"

	timerdto "pomoterm/internal/modules/timer/dto"
	timerin "pomoterm/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (timerdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Start(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return h.usecase.Start(ctx, mode)
}

func (h CLIHandler) Pause(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return h.usecase.Pause(ctx, mode)
}

func (h CLIHandler) Reset(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return h.usecase.Reset(ctx, mode)
}

func (h CLIHandler) SetGoal(ctx context.Context, mode, goal string) (timerdto.TimerOutput, error) {
	return h.usecase.SetGoal(ctx, timerdto.GoalInput{Mode: mode, Goal: goal})
}

func (h CLIHandler) Tick(ctx context.Context, mode string) (timerdto.TickOutput, error) {
	return h.usecase.Tick(ctx, mode)
}
