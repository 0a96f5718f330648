package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pomoterm/internal/modules/session/adapter/out"
	"pomoterm/internal/modules/session/domain"
)

func newProjector(t *testing.T) *out.SQLiteHistoryProjector {
	t.Helper()
	projector, err := out.NewSQLiteHistoryProjector(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	return projector
}

func TestHistoryProjectorStatsExcludeTrash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector := newProjector(t)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	deleted := start.Add(2 * time.Hour)
	rows := []domain.Session{
		{ID: "w1", Kind: domain.KindWork, StartTime: start, DurationSeconds: 1500, Status: domain.StatusActive},
		{ID: "w2", Kind: domain.KindWork, StartTime: start.Add(time.Hour), DurationSeconds: 900, Status: domain.StatusArchived},
		{ID: "w3", Kind: domain.KindWork, StartTime: start, DurationSeconds: 1500, Status: domain.StatusTrashed, DeletedAt: &deleted},
		{ID: "b1", Kind: domain.KindBreak, StartTime: start, DurationSeconds: 300, Status: domain.StatusActive},
	}
	for _, row := range rows {
		if err := projector.Upsert(ctx, row); err != nil {
			t.Fatalf("upsert %s: %v", row.ID, err)
		}
	}

	stats, err := projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected two kinds, got %+v", stats)
	}
	byKind := map[domain.Kind]domain.KindStats{}
	for _, row := range stats {
		byKind[row.Kind] = row
	}
	if work := byKind[domain.KindWork]; work.Sessions != 2 || work.TotalSeconds != 2400 {
		t.Fatalf("trashed sessions must not count, got %+v", work)
	}
	if brk := byKind[domain.KindBreak]; brk.Sessions != 1 || brk.TotalSeconds != 300 {
		t.Fatalf("unexpected break stats: %+v", brk)
	}
}

func TestHistoryProjectorUpsertReplacesRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector := newProjector(t)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	session := domain.Session{ID: "a", Kind: domain.KindWork, StartTime: start, DurationSeconds: 1500, Status: domain.StatusActive}
	if err := projector.Upsert(ctx, session); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	session.DurationSeconds = 600
	if err := projector.Upsert(ctx, session); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stats, err := projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Sessions != 1 || stats[0].TotalSeconds != 600 {
		t.Fatalf("upsert must replace, got %+v", stats)
	}
}

func TestHistoryProjectorDeleteAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector := newProjector(t)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"a", "b"} {
		err := projector.Upsert(ctx, domain.Session{ID: id, Kind: domain.KindWork, StartTime: start, DurationSeconds: 1500, Status: domain.StatusActive})
		if err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	if err := projector.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stats, err := projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Sessions != 1 {
		t.Fatalf("expected one remaining row, got %+v", stats)
	}

	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	stats, err = projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats after reset: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("reset must clear the table, got %+v", stats)
	}
}
