package out

import (
	"context"

	"pomoterm/internal/modules/task/domain"
)

// TaskStore persists the full ordered task list, newest first.
type TaskStore interface {
	Load(ctx context.Context) ([]domain.Task, error)
	Save(ctx context.Context, tasks []domain.Task) error
}
