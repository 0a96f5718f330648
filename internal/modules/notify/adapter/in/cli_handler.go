package in

import (
	"context"

	notifydto "pomoterm/internal/modules/notify/dto"
	notifyin "pomoterm/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, title, body string) (notifydto.SendOutput, error) {
	return h.usecase.Send(ctx, notifydto.SendInput{Title: title, Body: body})
}

func (h CLIHandler) List(ctx context.Context) ([]notifydto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]notifydto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
