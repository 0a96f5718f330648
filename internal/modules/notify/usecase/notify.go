package usecase

import (
	"context"

	"pomoterm/internal/modules/notify/domain"
	"pomoterm/internal/modules/notify/dto"
	"pomoterm/internal/modules/notify/service"
)

type NotifyUsecase struct {
	notify *service.NotifyService
}

func NewNotifyUsecase(notify *service.NotifyService) *NotifyUsecase {
	return &NotifyUsecase{notify: notify}
}

func (u *NotifyUsecase) Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error) {
	deliveries, err := u.notify.Send(ctx, toNotification(input))
	if err != nil {
		return dto.SendOutput{}, err
	}
	out := dto.SendOutput{Deliveries: make([]dto.DeliveryOutput, 0, len(deliveries))}
	for _, d := range deliveries {
		out.Deliveries = append(out.Deliveries, dto.DeliveryOutput{
			Target:    d.Target,
			Delivered: d.Delivered,
			Error:     d.Error,
		})
	}
	return out, nil
}

func (u *NotifyUsecase) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return u.notify.List(ctx)
}

func (u *NotifyUsecase) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return u.notify.Doctor(ctx)
}

func toNotification(input dto.SendInput) domain.Notification {
	return domain.Notification{Title: input.Title, Body: input.Body}
}
