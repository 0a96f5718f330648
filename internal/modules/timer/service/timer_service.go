package service

import (
	"context"
	"fmt"
	"sync"

	"pomoterm/internal/modules/timer/domain"
	timerout "pomoterm/internal/modules/timer/port/out"
	"pomoterm/internal/platform/clock"
)

// TimerService owns the live countdowns, one per mode. Every mutation is
// written through to the state store so the timers survive restarts; a
// persistence failure is surfaced but never rolls the countdown back.
type TimerService struct {
	mu         sync.Mutex
	clock      clock.Clock
	store      timerout.StateStore
	countdowns map[domain.Mode]domain.Countdown
}

func NewTimerService(clk clock.Clock, store timerout.StateStore, workSeconds, breakSeconds int) (*TimerService, error) {
	durations := map[domain.Mode]int{
		domain.ModeWork:  workSeconds,
		domain.ModeBreak: breakSeconds,
	}
	svc := &TimerService{
		clock:      clk,
		store:      store,
		countdowns: make(map[domain.Mode]domain.Countdown, len(durations)),
	}
	for mode, duration := range durations {
		if duration < 1 {
			return nil, fmt.Errorf("%s duration must be at least one second, got %d", mode, duration)
		}
		snap, found, err := store.Load(context.Background(), mode)
		if err != nil {
			return nil, fmt.Errorf("load %s countdown: %w", mode, err)
		}
		if found {
			svc.countdowns[mode] = domain.FromSnapshot(mode, duration, snap)
		} else {
			svc.countdowns[mode] = domain.NewCountdown(mode, duration)
		}
	}
	return svc, nil
}

// Get returns the current countdown for one mode.
func (s *TimerService) Get(_ context.Context, mode domain.Mode) (domain.Countdown, error) {
	if err := mode.Validate(); err != nil {
		return domain.Countdown{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdowns[mode], nil
}

// All returns every countdown in display order.
func (s *TimerService) All(_ context.Context) []domain.Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Countdown, 0, len(s.countdowns))
	for _, mode := range domain.Modes() {
		out = append(out, s.countdowns[mode])
	}
	return out
}

func (s *TimerService) Start(ctx context.Context, mode domain.Mode) (domain.Countdown, error) {
	now := s.clock.Now()
	return s.apply(ctx, mode, func(c domain.Countdown) domain.Countdown {
		return c.Start(now)
	})
}

func (s *TimerService) Pause(ctx context.Context, mode domain.Mode) (domain.Countdown, error) {
	return s.apply(ctx, mode, domain.Countdown.Pause)
}

// Reset rearms the countdown without recording anything. The in-progress
// interval, if any, is abandoned and its goal discarded.
func (s *TimerService) Reset(ctx context.Context, mode domain.Mode) (domain.Countdown, error) {
	return s.apply(ctx, mode, domain.Countdown.Rollover)
}

func (s *TimerService) SetGoal(ctx context.Context, mode domain.Mode, goal string) (domain.Countdown, error) {
	return s.apply(ctx, mode, func(c domain.Countdown) domain.Countdown {
		return c.SetGoal(goal)
	})
}

// Tick advances one countdown by a second. On the completing tick the
// returned countdown is frozen at zero; the caller reads the finished
// interval from it and then calls Rollover.
func (s *TimerService) Tick(ctx context.Context, mode domain.Mode) (domain.Countdown, bool, error) {
	if err := mode.Validate(); err != nil {
		return domain.Countdown{}, false, err
	}
	s.mu.Lock()
	ticked, done := s.countdowns[mode].Tick()
	s.countdowns[mode] = ticked
	s.mu.Unlock()
	return ticked, done, s.persist(ctx, mode, ticked)
}

// Rollover rearms a finished countdown for its next interval.
func (s *TimerService) Rollover(ctx context.Context, mode domain.Mode) (domain.Countdown, error) {
	return s.apply(ctx, mode, domain.Countdown.Rollover)
}

func (s *TimerService) apply(ctx context.Context, mode domain.Mode, fn func(domain.Countdown) domain.Countdown) (domain.Countdown, error) {
	if err := mode.Validate(); err != nil {
		return domain.Countdown{}, err
	}
	s.mu.Lock()
	updated := fn(s.countdowns[mode])
	s.countdowns[mode] = updated
	s.mu.Unlock()
	return updated, s.persist(ctx, mode, updated)
}

func (s *TimerService) persist(ctx context.Context, mode domain.Mode, c domain.Countdown) error {
	if err := s.store.Save(ctx, mode, c.Snapshot()); err != nil {
		return fmt.Errorf("save %s countdown: %w", mode, err)
	}
	return nil
}
