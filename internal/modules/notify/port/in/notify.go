package in

import (
	"context"

	"pomoterm/internal/modules/notify/dto"
)

// Usecase fans a notification out to the desktop channel and every enabled
// notifier plugin. Send reports per-channel outcomes instead of failing.
type Usecase interface {
	Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error)
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
}
