package out

import (
	"context"

	cheerin "pomoterm/internal/modules/cheer/port/in"
	timerout "pomoterm/internal/modules/timer/port/out"
)

// CheerAnnouncerAdapter posts the chat celebration for a finished interval.
type CheerAnnouncerAdapter struct {
	cheers cheerin.Usecase
}

func NewCheerAnnouncerAdapter(cheers cheerin.Usecase) timerout.CompletionAnnouncer {
	return &CheerAnnouncerAdapter{cheers: cheers}
}

func (a *CheerAnnouncerAdapter) AnnounceCompletion(ctx context.Context, _ string) error {
	_, err := a.cheers.AppendCompletion(ctx)
	return err
}
