package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pomoterm/internal/modules/session/domain"
	"pomoterm/internal/modules/session/service"
	"pomoterm/internal/platform/tx"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type memoryStore struct {
	saved   []domain.Session
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load(context.Context) ([]domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Session(nil), m.saved...), nil
}

func (m *memoryStore) Save(_ context.Context, sessions []domain.Session) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append([]domain.Session(nil), sessions...)
	return nil
}

type memoryProjector struct {
	rows map[string]domain.Session
}

func newMemoryProjector() *memoryProjector {
	return &memoryProjector{rows: map[string]domain.Session{}}
}

func (m *memoryProjector) Upsert(_ context.Context, s domain.Session) error {
	m.rows[s.ID] = s
	return nil
}

func (m *memoryProjector) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryProjector) Reset(context.Context) error {
	m.rows = map[string]domain.Session{}
	return nil
}

func (m *memoryProjector) Stats(context.Context) ([]domain.KindStats, error) {
	counts := map[domain.Kind]*domain.KindStats{}
	for _, s := range m.rows {
		if s.Status == domain.StatusTrashed {
			continue
		}
		row, ok := counts[s.Kind]
		if !ok {
			row = &domain.KindStats{Kind: s.Kind}
			counts[s.Kind] = row
		}
		row.Sessions++
		row.TotalSeconds += s.DurationSeconds
	}
	var out []domain.KindStats
	for _, row := range counts {
		out = append(out, *row)
	}
	return out, nil
}

func session(id string, kind domain.Kind, start time.Time) domain.Session {
	return domain.Session{
		ID:              id,
		Kind:            kind,
		StartTime:       start,
		DurationSeconds: 1500,
		Status:          domain.StatusActive,
	}
}

func newService(t *testing.T, clk *fakeClock, store *memoryStore) (*service.SessionService, *memoryProjector) {
	t.Helper()
	projector := newMemoryProjector()
	svc, err := service.NewSessionService(clk, tx.NoopManager{}, store, projector)
	if err != nil {
		t.Fatalf("new session service: %v", err)
	}
	return svc, projector
}

func TestAppendPrependsAndWritesThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	svc, projector := newService(t, clk, store)

	first := session("a", domain.KindWork, clk.now)
	second := session("b", domain.KindBreak, clk.now.Add(30*time.Minute))
	if err := svc.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := svc.Append(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	all := svc.List(ctx, "")
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("expected most-recent-first log, got %+v", all)
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected write-through, store has %d records", len(store.saved))
	}
	if _, ok := projector.rows["b"]; !ok {
		t.Fatalf("expected projector upsert for b")
	}
}

func TestAppendRejectsInvalidSession(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _ := newService(t, clk, &memoryStore{})

	bad := session("x", domain.KindWork, clk.now)
	bad.DurationSeconds = 0
	if err := svc.Append(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if got := svc.List(context.Background(), ""); len(got) != 0 {
		t.Fatalf("invalid session must not enter the log: %+v", got)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _ := newService(t, clk, &memoryStore{})
	if err := svc.Append(ctx, session("a", domain.KindWork, clk.now)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if ok, err := svc.Trash(ctx, "a"); err != nil || !ok {
		t.Fatalf("trash: ok=%v err=%v", ok, err)
	}
	got, _ := svc.Get(ctx, "a")
	if got.Status != domain.StatusTrashed || got.DeletedAt == nil || !got.DeletedAt.Equal(clk.now) {
		t.Fatalf("trash must stamp deletion time: %+v", got)
	}

	if ok, err := svc.Restore(ctx, "a"); err != nil || !ok {
		t.Fatalf("restore: ok=%v err=%v", ok, err)
	}
	got, _ = svc.Get(ctx, "a")
	if got.Status != domain.StatusActive || got.DeletedAt != nil {
		t.Fatalf("restore must clear deletion time: %+v", got)
	}

	if ok, err := svc.Archive(ctx, "a"); err != nil || !ok {
		t.Fatalf("archive: ok=%v err=%v", ok, err)
	}
	got, _ = svc.Get(ctx, "a")
	if got.Status != domain.StatusArchived || got.DeletedAt != nil {
		t.Fatalf("archive must not stamp deletion time: %+v", got)
	}
}

func TestMissingIDsAreSilentNoOps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	svc, _ := newService(t, clk, store)

	if err := svc.Update(ctx, "ghost", domain.Patch{}); err != nil {
		t.Fatalf("update of missing id must be a no-op, got %v", err)
	}
	if ok, err := svc.Trash(ctx, "ghost"); err != nil || ok {
		t.Fatalf("trash of missing id must be a no-op, ok=%v err=%v", ok, err)
	}
	if ok, err := svc.Remove(ctx, "ghost"); err != nil || ok {
		t.Fatalf("remove of missing id must be a no-op, ok=%v err=%v", ok, err)
	}
	if store.saves != 0 {
		t.Fatalf("no-ops must not persist, got %d saves", store.saves)
	}
}

func TestBulkTrashToleratesMissingIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _ := newService(t, clk, &memoryStore{})
	for _, id := range []string{"a", "c"} {
		if err := svc.Append(ctx, session(id, domain.KindWork, clk.now)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	affected, err := svc.BulkTrash(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("bulk trash: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 affected, got %d", affected)
	}
	for _, id := range []string{"a", "c"} {
		got, _ := svc.Get(ctx, id)
		if got.Status != domain.StatusTrashed {
			t.Fatalf("%s should be trashed: %+v", id, got)
		}
	}
	if got := svc.List(ctx, ""); len(got) != 2 {
		t.Fatalf("log length must be unchanged: %+v", got)
	}
}

func TestPurgeExpiredTrashUsesWholeDayFloor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: now}
	svc, projector := newService(t, clk, &memoryStore{})

	old := session("old", domain.KindWork, now.Add(-40*24*time.Hour)).Trashed(now.Add(-31 * 24 * time.Hour))
	fresh := session("fresh", domain.KindWork, now.Add(-40*24*time.Hour)).Trashed(now.Add(-29 * 24 * time.Hour))
	for _, s := range []domain.Session{old, fresh} {
		if err := svc.Append(ctx, s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	purged, err := svc.PurgeExpiredTrash(ctx, domain.DefaultTrashRetentionDays)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if len(purged) != 1 || purged[0] != "old" {
		t.Fatalf("expected only the 31-day-old record purged, got %v", purged)
	}
	if _, ok := svc.Get(ctx, "old"); ok {
		t.Fatalf("purged record must be gone")
	}
	if _, ok := svc.Get(ctx, "fresh"); !ok {
		t.Fatalf("29-day-old record must survive")
	}
	if _, ok := projector.rows["old"]; ok {
		t.Fatalf("purge must unproject the record")
	}

	// Idempotent when nothing is expired.
	again, err := svc.PurgeExpiredTrash(ctx, domain.DefaultTrashRetentionDays)
	if err != nil || again != nil {
		t.Fatalf("second sweep must be a no-op, got %v %v", again, err)
	}
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{saveErr: errors.New("disk full")}
	svc, _ := newService(t, clk, store)

	err := svc.Append(ctx, session("a", domain.KindWork, clk.now))
	if err == nil {
		t.Fatalf("expected surfaced persistence error")
	}
	if got, ok := svc.Get(ctx, "a"); !ok || got.ID != "a" {
		t.Fatalf("in-memory state must stay authoritative after a failed write")
	}
}
