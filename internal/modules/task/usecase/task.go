package usecase

import (
	"context"
	"fmt"
	"strings"

	"pomoterm/internal/modules/task/domain"
	"pomoterm/internal/modules/task/dto"
	"pomoterm/internal/modules/task/service"
	"pomoterm/internal/platform/clock"
	apperrors "pomoterm/internal/platform/errors"
	"pomoterm/internal/platform/id"
)

type TaskUsecase struct {
	clock clock.Clock
	ids   id.Generator
	tasks *service.TaskService
}

func NewTaskUsecase(clk clock.Clock, ids id.Generator, tasks *service.TaskService) *TaskUsecase {
	return &TaskUsecase{clock: clk, ids: ids, tasks: tasks}
}

// Add creates a task from trimmed text. Blank text is rejected.
func (u *TaskUsecase) Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return dto.TaskOutput{}, fmt.Errorf("%w: task text is required", apperrors.ErrInvalidInput)
	}
	task := domain.Task{
		ID:        u.ids.New(),
		Text:      text,
		CreatedAt: u.clock.Now(),
	}
	if err := u.tasks.Add(ctx, task); err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (u *TaskUsecase) List(ctx context.Context) (dto.ListOutput, error) {
	tasks := u.tasks.List(ctx)
	out := dto.ListOutput{Tasks: make([]dto.TaskOutput, 0, len(tasks))}
	for _, task := range tasks {
		out.Tasks = append(out.Tasks, toOutput(task))
	}
	return out, nil
}

func (u *TaskUsecase) Toggle(ctx context.Context, id string) error {
	return u.tasks.Toggle(ctx, id)
}

func (u *TaskUsecase) Remove(ctx context.Context, id string) error {
	return u.tasks.Remove(ctx, id)
}

func toOutput(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:        task.ID,
		Text:      task.Text,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}
}
