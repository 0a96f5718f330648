package in

import (
	"context"

	"pomoterm/internal/modules/task/dto"
)

// Usecase is the task list's surface. Toggle and Remove tolerate missing
// ids as no-ops.
type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error)
	List(ctx context.Context) (dto.ListOutput, error)
	Toggle(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}
