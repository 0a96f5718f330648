package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pomoterm/internal/modules/task/domain"
	"pomoterm/internal/modules/task/dto"
	in "pomoterm/internal/modules/task/port/in"
	"pomoterm/internal/modules/task/service"
	"pomoterm/internal/modules/task/usecase"
	apperrors "pomoterm/internal/platform/errors"
)

var _ in.Usecase = (*usecase.TaskUsecase)(nil)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("task-%d", f.n)
}

type memoryStore struct {
	saved []domain.Task
	saves int
}

func (m *memoryStore) Load(context.Context) ([]domain.Task, error) {
	return append([]domain.Task(nil), m.saved...), nil
}

func (m *memoryStore) Save(_ context.Context, tasks []domain.Task) error {
	m.saves++
	m.saved = append([]domain.Task(nil), tasks...)
	return nil
}

func newUsecase(t *testing.T, clk *fakeClock, store *memoryStore) *usecase.TaskUsecase {
	t.Helper()
	svc, err := service.NewTaskService(store)
	if err != nil {
		t.Fatalf("new task service: %v", err)
	}
	return usecase.NewTaskUsecase(clk, &fakeID{}, svc)
}

func TestAddPrependsTrimmedTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	uc := newUsecase(t, clk, store)

	if _, err := uc.Add(ctx, dto.AddInput{Text: "first"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := uc.Add(ctx, dto.AddInput{Text: "  second  "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Text != "second" || out.ID != "task-2" || !out.CreatedAt.Equal(clk.now) {
		t.Fatalf("unexpected task: %+v", out)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Tasks) != 2 || list.Tasks[0].Text != "second" || list.Tasks[1].Text != "first" {
		t.Fatalf("expected newest first, got %+v", list.Tasks)
	}
	if len(store.saved) != 2 {
		t.Fatalf("adds must write through, store has %d", len(store.saved))
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)}
	uc := newUsecase(t, clk, &memoryStore{})

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := uc.Add(context.Background(), dto.AddInput{Text: text}); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("text %q: expected ErrInvalidInput, got %v", text, err)
		}
	}
}

func TestToggleFlipsCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)}
	uc := newUsecase(t, clk, &memoryStore{})

	added, err := uc.Add(ctx, dto.AddInput{Text: "toggle me"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Toggle(ctx, added.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	list, _ := uc.List(ctx)
	if !list.Tasks[0].Completed {
		t.Fatalf("expected completed, got %+v", list.Tasks[0])
	}
	if err := uc.Toggle(ctx, added.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	list, _ = uc.List(ctx)
	if list.Tasks[0].Completed {
		t.Fatalf("expected uncompleted, got %+v", list.Tasks[0])
	}
}

func TestMissingIDsAreSilentNoOps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	uc := newUsecase(t, clk, store)

	if err := uc.Toggle(ctx, "ghost"); err != nil {
		t.Fatalf("toggle missing id must be a no-op, got %v", err)
	}
	if err := uc.Remove(ctx, "ghost"); err != nil {
		t.Fatalf("remove missing id must be a no-op, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("no-ops must not persist, got %d saves", store.saves)
	}
}

func TestRemoveDeletesOneTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)}
	uc := newUsecase(t, clk, &memoryStore{})

	a, _ := uc.Add(ctx, dto.AddInput{Text: "keep"})
	b, _ := uc.Add(ctx, dto.AddInput{Text: "drop"})
	if err := uc.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	list, _ := uc.List(ctx)
	if len(list.Tasks) != 1 || list.Tasks[0].ID != a.ID {
		t.Fatalf("expected only %s to remain, got %+v", a.ID, list.Tasks)
	}
}
