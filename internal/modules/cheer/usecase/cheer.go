package usecase

import (
	"context"

	"pomoterm/internal/modules/cheer/domain"
	"pomoterm/internal/modules/cheer/dto"
	"pomoterm/internal/modules/cheer/service"
)

type CheerUsecase struct {
	cheers *service.CheerService
}

func NewCheerUsecase(cheers *service.CheerService) *CheerUsecase {
	return &CheerUsecase{cheers: cheers}
}

func (u *CheerUsecase) Thread(ctx context.Context) (dto.ThreadOutput, error) {
	return toOutput(u.cheers.Thread(ctx)), nil
}

func (u *CheerUsecase) AppendCompletion(ctx context.Context) (dto.ThreadOutput, error) {
	thread, err := u.cheers.AppendCompletion(ctx)
	if err != nil {
		return dto.ThreadOutput{}, err
	}
	return toOutput(thread), nil
}

func toOutput(thread domain.Thread) dto.ThreadOutput {
	out := dto.ThreadOutput{Messages: make([]dto.MessageOutput, 0, len(thread))}
	for _, msg := range thread {
		out.Messages = append(out.Messages, dto.MessageOutput{
			ID:        msg.ID,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			Sender:    string(msg.Sender),
		})
	}
	return out
}
