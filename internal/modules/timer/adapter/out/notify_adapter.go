package out

import (
	"context"

	notifydto "pomoterm/internal/modules/notify/dto"
	notifyin "pomoterm/internal/modules/notify/port/in"
	timerout "pomoterm/internal/modules/timer/port/out"
)

// NotifyAdapter fans the completion notification out through the notify
// module's channels.
type NotifyAdapter struct {
	notify notifyin.Usecase
}

func NewNotifyAdapter(notify notifyin.Usecase) timerout.Notifier {
	return &NotifyAdapter{notify: notify}
}

func (a *NotifyAdapter) Notify(ctx context.Context, title, body string) error {
	_, err := a.notify.Send(ctx, notifydto.SendInput{Title: title, Body: body})
	return err
}
