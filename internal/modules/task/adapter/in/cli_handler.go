package in

import (
	"context"

	taskdto "pomoterm/internal/modules/task/dto"
	taskin "pomoterm/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, text string) (taskdto.TaskOutput, error) {
	return h.usecase.Add(ctx, taskdto.AddInput{Text: text})
}

func (h CLIHandler) List(ctx context.Context) (taskdto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) error {
	return h.usecase.Toggle(ctx, id)
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.Remove(ctx, id)
}
