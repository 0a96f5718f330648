package in

import (
	"context"
	"time"

	sessiondto "pomoterm/internal/modules/session/dto"
	sessionin "pomoterm/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, kind string, start time.Time, durationSeconds int, goal string) (sessiondto.SessionOutput, error) {
	return h.usecase.Record(ctx, sessiondto.RecordInput{
		Kind:            kind,
		StartTime:       start,
		DurationSeconds: durationSeconds,
		Goal:            goal,
	})
}

func (h CLIHandler) List(ctx context.Context, status string) (sessiondto.ListOutput, error) {
	return h.usecase.List(ctx, sessiondto.ListInput{Status: status})
}

func (h CLIHandler) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) Archive(ctx context.Context, ids []string) (sessiondto.BulkOutput, error) {
	return h.usecase.Archive(ctx, ids)
}

func (h CLIHandler) Trash(ctx context.Context, ids []string) (sessiondto.BulkOutput, error) {
	return h.usecase.Trash(ctx, ids)
}

func (h CLIHandler) Restore(ctx context.Context, ids []string) (sessiondto.BulkOutput, error) {
	return h.usecase.Restore(ctx, ids)
}

func (h CLIHandler) PermanentlyDelete(ctx context.Context, ids []string) (sessiondto.BulkOutput, error) {
	return h.usecase.PermanentlyDelete(ctx, ids)
}

func (h CLIHandler) PurgeExpiredTrash(ctx context.Context) (sessiondto.PurgeOutput, error) {
	return h.usecase.PurgeExpiredTrash(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (sessiondto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
