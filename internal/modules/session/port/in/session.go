package in

import (
	"context"

	"pomoterm/internal/modules/session/dto"
)

// Usecase is the session log's command and query surface. Every read runs
// the trash retention sweep first, so expiry needs no dedicated scheduler.
type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.SessionOutput, error)
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error)
	Archive(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Trash(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Restore(ctx context.Context, ids []string) (dto.BulkOutput, error)
	PermanentlyDelete(ctx context.Context, ids []string) (dto.BulkOutput, error)
	PurgeExpiredTrash(ctx context.Context) (dto.PurgeOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context) error
}
