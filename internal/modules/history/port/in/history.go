package in

import (
	"context"

	"pomoterm/internal/modules/history/dto"
)

// Usecase is the history screen's surface. Queries read the session log
// through its retention sweep; the lifecycle operations pass through to it,
// so the screen needs only this one port.
type Usecase interface {
	Query(ctx context.Context, input dto.QueryInput) (dto.QueryOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Archive(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Trash(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Restore(ctx context.Context, ids []string) (dto.BulkOutput, error)
	PermanentlyDelete(ctx context.Context, ids []string) (dto.BulkOutput, error)
}
