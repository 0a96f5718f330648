package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"pomoterm/internal/modules/cheer/domain"
	cheerout "pomoterm/internal/modules/cheer/port/out"
	"pomoterm/internal/platform/clock"
	"pomoterm/internal/platform/id"
)

// CheerService owns the chat thread. Appends write through to the store and
// keep the thread inside the message cap.
type CheerService struct {
	mu       sync.Mutex
	clock    clock.Clock
	ids      id.Generator
	store    cheerout.MessageStore
	pick     func(n int) int
	messages domain.Thread
}

func NewCheerService(clk clock.Clock, ids id.Generator, store cheerout.MessageStore) (*CheerService, error) {
	loaded, err := store.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load chat thread: %w", err)
	}
	return &CheerService{
		clock:    clk,
		ids:      ids,
		store:    store,
		pick:     rand.Intn,
		messages: loaded,
	}, nil
}

func (s *CheerService) Thread(_ context.Context) domain.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Thread(nil), s.messages...)
}

// AppendCompletion posts the system banner followed by one random
// encouragement line, in one write.
func (s *CheerService) AppendCompletion(ctx context.Context) (domain.Thread, error) {
	now := s.clock.Now()
	banner := domain.Message{
		ID:        s.ids.New(),
		Text:      domain.CompletionBanner,
		Timestamp: now,
		Sender:    domain.SenderSystem,
	}
	line := domain.Message{
		ID:        s.ids.New(),
		Text:      domain.EncouragementLines[s.pick(len(domain.EncouragementLines))],
		Timestamp: now,
		Sender:    domain.SenderCoach,
	}

	s.mu.Lock()
	s.messages = s.messages.Append(banner, line)
	snapshot := append(domain.Thread(nil), s.messages...)
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		return snapshot, fmt.Errorf("write chat thread: %w", err)
	}
	return snapshot, nil
}
