package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pomoterm/internal/modules/cheer/domain"
	"pomoterm/internal/modules/cheer/service"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("msg-%d", f.n)
}

type memoryStore struct {
	saved domain.Thread
}

func (m *memoryStore) Load(context.Context) (domain.Thread, error) {
	return append(domain.Thread(nil), m.saved...), nil
}

func (m *memoryStore) Save(_ context.Context, thread domain.Thread) error {
	m.saved = append(domain.Thread(nil), thread...)
	return nil
}

func newService(t *testing.T, clk *fakeClock, store *memoryStore) *service.CheerService {
	t.Helper()
	svc, err := service.NewCheerService(clk, &fakeID{}, store)
	if err != nil {
		t.Fatalf("new cheer service: %v", err)
	}
	return svc
}

func TestAppendCompletionPostsBannerAndCoachLine(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	svc := newService(t, clk, store)

	thread, err := svc.AppendCompletion(context.Background())
	if err != nil {
		t.Fatalf("append completion: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("expected banner plus coach line, got %+v", thread)
	}
	banner, line := thread[0], thread[1]
	if banner.Sender != domain.SenderSystem || banner.Text != domain.CompletionBanner {
		t.Fatalf("unexpected banner: %+v", banner)
	}
	if line.Sender != domain.SenderCoach {
		t.Fatalf("unexpected coach line: %+v", line)
	}
	known := false
	for _, candidate := range domain.EncouragementLines {
		if line.Text == candidate {
			known = true
			break
		}
	}
	if !known {
		t.Fatalf("coach line must come from the encouragement pool, got %q", line.Text)
	}
	if len(store.saved) != 2 {
		t.Fatalf("append must write through, store has %d", len(store.saved))
	}
}

func TestThreadSurvivesRestartAndStaysCapped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	svc := newService(t, clk, store)

	for i := 0; i < domain.MaxMessages; i++ {
		if _, err := svc.AppendCompletion(ctx); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	thread := svc.Thread(ctx)
	if len(thread) != domain.MaxMessages {
		t.Fatalf("thread must cap at %d, got %d", domain.MaxMessages, len(thread))
	}

	restarted := newService(t, clk, store)
	if got := restarted.Thread(ctx); len(got) != domain.MaxMessages {
		t.Fatalf("thread must survive a restart, got %d", len(got))
	}
}
