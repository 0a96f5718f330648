package usecase

import (
	"context"
	"fmt"
	"strings"

	"pomoterm/internal/modules/history/domain"
	"pomoterm/internal/modules/history/dto"
	historyout "pomoterm/internal/modules/history/port/out"
	sessiondto "pomoterm/internal/modules/session/dto"
	sessionin "pomoterm/internal/modules/session/port/in"
	"pomoterm/internal/platform/clock"
	apperrors "pomoterm/internal/platform/errors"
)

const defaultReportTitle = "Pomodoro History"

// HistoryUsecase is the read side over the session log plus the export
// pipeline. It owns no state of its own.
type HistoryUsecase struct {
	clock    clock.Clock
	sessions sessionin.Usecase
	exporter historyout.ReportExporter
}

func NewHistoryUsecase(clk clock.Clock, sessions sessionin.Usecase, exporter historyout.ReportExporter) *HistoryUsecase {
	return &HistoryUsecase{clock: clk, sessions: sessions, exporter: exporter}
}

func (u *HistoryUsecase) Query(ctx context.Context, input dto.QueryInput) (dto.QueryOutput, error) {
	filter := input.Filter
	if filter == "" {
		filter = string(domain.FilterActive)
	}
	listed, err := u.sessions.List(ctx, sessiondto.ListInput{Status: filter})
	if err != nil {
		return dto.QueryOutput{}, err
	}
	out := dto.QueryOutput{Entries: make([]dto.EntryOutput, 0, len(listed.Sessions))}
	for _, sess := range listed.Sessions {
		out.Entries = append(out.Entries, dto.EntryOutput{
			ID:                     sess.ID,
			Kind:                   sess.Kind,
			StartTime:              sess.StartTime,
			DurationSeconds:        sess.DurationSeconds,
			Goal:                   sess.Goal,
			Status:                 sess.Status,
			RemainingRetentionDays: sess.RemainingRetentionDays,
		})
	}
	return out, nil
}

func (u *HistoryUsecase) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := u.sessions.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	out := dto.StatsOutput{Kinds: make([]dto.KindStatsOutput, 0, len(stats.Kinds))}
	for _, row := range stats.Kinds {
		out.Kinds = append(out.Kinds, dto.KindStatsOutput{
			Kind:         row.Kind,
			Sessions:     row.Sessions,
			TotalSeconds: row.TotalSeconds,
		})
	}
	return out, nil
}

// Export writes a markdown report covering everything outside the trash.
func (u *HistoryUsecase) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if strings.TrimSpace(input.Dir) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultReportTitle
	}

	listed, err := u.sessions.List(ctx, sessiondto.ListInput{})
	if err != nil {
		return dto.ExportOutput{}, err
	}
	stats, err := u.sessions.Stats(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}

	report := domain.Report{Title: title, GeneratedAt: u.clock.Now()}
	for _, sess := range listed.Sessions {
		if sess.Status == string(domain.FilterTrashed) {
			continue
		}
		report.Rows = append(report.Rows, domain.ReportRow{
			Kind:            sess.Kind,
			StartTime:       sess.StartTime,
			DurationSeconds: sess.DurationSeconds,
			Goal:            sess.Goal,
			Status:          sess.Status,
		})
	}
	for _, row := range stats.Kinds {
		report.Stats = append(report.Stats, domain.ReportStats{
			Kind:         row.Kind,
			Sessions:     row.Sessions,
			TotalSeconds: row.TotalSeconds,
		})
	}

	path, err := u.exporter.Export(ctx, input.Dir, report)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("export history: %w", err)
	}
	return dto.ExportOutput{Path: path}, nil
}

func (u *HistoryUsecase) Archive(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	out, err := u.sessions.Archive(ctx, ids)
	return dto.BulkOutput{Affected: out.Affected}, err
}

func (u *HistoryUsecase) Trash(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	out, err := u.sessions.Trash(ctx, ids)
	return dto.BulkOutput{Affected: out.Affected}, err
}

func (u *HistoryUsecase) Restore(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	out, err := u.sessions.Restore(ctx, ids)
	return dto.BulkOutput{Affected: out.Affected}, err
}

func (u *HistoryUsecase) PermanentlyDelete(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	out, err := u.sessions.PermanentlyDelete(ctx, ids)
	return dto.BulkOutput{Affected: out.Affected}, err
}
