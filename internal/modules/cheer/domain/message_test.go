package domain_test

import (
	"fmt"
	"testing"
	"time"

	"pomoterm/internal/modules/cheer/domain"
)

func message(i int, ts time.Time) domain.Message {
	return domain.Message{
		ID:        fmt.Sprintf("m-%d", i),
		Text:      fmt.Sprintf("line %d", i),
		Timestamp: ts,
		Sender:    domain.SenderSystem,
	}
}

func TestThreadAppendKeepsOrder(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)
	var thread domain.Thread
	for i := 0; i < 3; i++ {
		thread = thread.Append(message(i, now))
	}
	if len(thread) != 3 || thread[0].ID != "m-0" || thread[2].ID != "m-2" {
		t.Fatalf("expected oldest-first order, got %+v", thread)
	}
}

func TestThreadCapsAtMaxMessages(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)
	var thread domain.Thread
	for i := 0; i < domain.MaxMessages+7; i++ {
		thread = thread.Append(message(i, now))
	}
	if len(thread) != domain.MaxMessages {
		t.Fatalf("expected cap of %d, got %d", domain.MaxMessages, len(thread))
	}
	if thread[0].ID != "m-7" {
		t.Fatalf("oldest messages must fall off the front, got %+v", thread[0])
	}
	if thread[len(thread)-1].ID != fmt.Sprintf("m-%d", domain.MaxMessages+6) {
		t.Fatalf("newest message must survive, got %+v", thread[len(thread)-1])
	}
}

func TestMessageValidation(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)
	valid := domain.Message{ID: "a", Text: "hi", Timestamp: now, Sender: domain.SenderCoach}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}

	tests := map[string]func(domain.Message) domain.Message{
		"blank id":       func(m domain.Message) domain.Message { m.ID = " "; return m },
		"blank text":     func(m domain.Message) domain.Message { m.Text = ""; return m },
		"zero timestamp": func(m domain.Message) domain.Message { m.Timestamp = time.Time{}; return m },
		"bad sender":     func(m domain.Message) domain.Message { m.Sender = "stranger"; return m },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			if err := mutate(valid).Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
