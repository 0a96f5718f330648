package in

import (
	"context"

	"pomoterm/internal/modules/timer/dto"
)

// Usecase drives the two countdowns. Tick is the only entry point that can
// complete an interval; completion records the session, announces it, fires
// the desktop notification, and rearms the countdown, in that order.
type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Start(ctx context.Context, mode string) (dto.TimerOutput, error)
	Pause(ctx context.Context, mode string) (dto.TimerOutput, error)
	Reset(ctx context.Context, mode string) (dto.TimerOutput, error)
	SetGoal(ctx context.Context, input dto.GoalInput) (dto.TimerOutput, error)
	Tick(ctx context.Context, mode string) (dto.TickOutput, error)
}
