package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pomoterm/internal/modules/timer/domain"
	"pomoterm/internal/modules/timer/dto"
	in "pomoterm/internal/modules/timer/port/in"
	"pomoterm/internal/modules/timer/service"
	"pomoterm/internal/modules/timer/usecase"
	apperrors "pomoterm/internal/platform/errors"
)

var _ in.Usecase = (*usecase.TimerUsecase)(nil)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type memoryStateStore struct {
	snaps map[domain.Mode]domain.Snapshot
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{snaps: map[domain.Mode]domain.Snapshot{}}
}

func (m *memoryStateStore) Load(_ context.Context, mode domain.Mode) (domain.Snapshot, bool, error) {
	snap, ok := m.snaps[mode]
	return snap, ok, nil
}

func (m *memoryStateStore) Save(_ context.Context, mode domain.Mode, snap domain.Snapshot) error {
	m.snaps[mode] = snap
	return nil
}

type recordedSession struct {
	kind            string
	start           time.Time
	durationSeconds int
	goal            string
}

type fakeRecorder struct {
	records []recordedSession
	err     error
}

func (f *fakeRecorder) RecordCompleted(_ context.Context, kind string, start time.Time, durationSeconds int, goal string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, recordedSession{kind, start, durationSeconds, goal})
	return fmt.Sprintf("session-%d", len(f.records)), nil
}

type fakeAnnouncer struct {
	modes []string
	err   error
}

func (f *fakeAnnouncer) AnnounceCompletion(_ context.Context, mode string) error {
	if f.err != nil {
		return f.err
	}
	f.modes = append(f.modes, mode)
	return nil
}

type notification struct{ title, body string }

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, title, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{title, body})
	return nil
}

type fixture struct {
	uc        *usecase.TimerUsecase
	recorder  *fakeRecorder
	announcer *fakeAnnouncer
	notifier  *fakeNotifier
}

func newFixture(t *testing.T, clk *fakeClock, workSeconds, breakSeconds int) fixture {
	t.Helper()
	svc, err := service.NewTimerService(clk, newMemoryStateStore(), workSeconds, breakSeconds)
	if err != nil {
		t.Fatalf("new timer service: %v", err)
	}
	recorder := &fakeRecorder{}
	announcer := &fakeAnnouncer{}
	notifier := &fakeNotifier{}
	return fixture{
		uc:        usecase.NewTimerUsecase(svc, recorder, announcer, notifier, nil),
		recorder:  recorder,
		announcer: announcer,
		notifier:  notifier,
	}
}

func runDown(t *testing.T, fx fixture, mode string, seconds int) dto.TickOutput {
	t.Helper()
	ctx := context.Background()
	var out dto.TickOutput
	var err error
	for i := 0; i < seconds; i++ {
		out, err = fx.uc.Tick(ctx, mode)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	return out
}

func TestTickCountsDownAndStatusTracksIt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1500, 300)

	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}
	out := runDown(t, fx, "work", 10)
	if out.Completed || out.Timer.TimeLeftSeconds != 1490 {
		t.Fatalf("ten ticks must leave 1490 seconds: %+v", out)
	}

	status, err := fx.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(status.Timers) != 2 {
		t.Fatalf("expected both countdowns in status: %+v", status.Timers)
	}
	if status.Timers[0].Mode != "work" || status.Timers[0].TimeLeftSeconds != 1490 {
		t.Fatalf("work countdown out of sync: %+v", status.Timers[0])
	}
	if status.Timers[1].Mode != "break" || status.Timers[1].TimeLeftSeconds != 300 {
		t.Fatalf("break countdown must be untouched: %+v", status.Timers[1])
	}
}

func TestCompletionRecordsBeforeRearming(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: start}
	fx := newFixture(t, clk, 3, 300)

	if _, err := fx.uc.SetGoal(ctx, dto.GoalInput{Mode: "work", Goal: "write tests"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}

	out := runDown(t, fx, "work", 3)
	if !out.Completed || out.SessionID != "session-1" {
		t.Fatalf("final tick must complete and name the record: %+v", out)
	}
	if out.Timer.TimeLeftSeconds != 3 || out.Timer.Running || out.Timer.SessionStart != nil {
		t.Fatalf("countdown must be rearmed after the record exists: %+v", out.Timer)
	}

	if len(fx.recorder.records) != 1 {
		t.Fatalf("expected one recorded interval, got %+v", fx.recorder.records)
	}
	rec := fx.recorder.records[0]
	if rec.kind != "work" || !rec.start.Equal(start) || rec.durationSeconds != 3 || rec.goal != "write tests" {
		t.Fatalf("recorded interval mismatch: %+v", rec)
	}
	if len(fx.announcer.modes) != 1 || fx.announcer.modes[0] != "work" {
		t.Fatalf("expected one announcement: %+v", fx.announcer.modes)
	}
	if len(fx.notifier.sent) != 1 {
		t.Fatalf("expected one notification: %+v", fx.notifier.sent)
	}
	if got := fx.notifier.sent[0]; got.title != "Pomodoro Timer" || got.body != "Work session completed!" {
		t.Fatalf("unexpected notification: %+v", got)
	}
}

func TestCompletionClearsGoalForNextInterval(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 2, 300)

	if _, err := fx.uc.SetGoal(ctx, dto.GoalInput{Mode: "work", Goal: "ship it"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}

	out := runDown(t, fx, "work", 2)
	if !out.Completed {
		t.Fatalf("expected completion: %+v", out)
	}
	if out.Timer.Goal != "" {
		t.Fatalf("rearmed countdown must start with an empty goal: %+v", out.Timer)
	}
	if fx.recorder.records[0].goal != "ship it" {
		t.Fatalf("record must keep the goal of the finished interval: %+v", fx.recorder.records[0])
	}

	status, err := fx.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Timers[0].Goal != "" {
		t.Fatalf("cleared goal must be visible in status: %+v", status.Timers[0])
	}
}

func TestBreakCompletionUsesBreakWording(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1500, 1)

	if _, err := fx.uc.Start(ctx, "break"); err != nil {
		t.Fatalf("start: %v", err)
	}
	out := runDown(t, fx, "break", 1)
	if !out.Completed {
		t.Fatalf("expected completion: %+v", out)
	}
	if got := fx.notifier.sent[0]; got.body != "Break session completed!" {
		t.Fatalf("unexpected notification body: %+v", got)
	}
	if fx.recorder.records[0].kind != "break" {
		t.Fatalf("expected a break record: %+v", fx.recorder.records[0])
	}
}

func TestRecordFailureLeavesCountdownFrozen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1, 300)
	fx.recorder.err = errors.New("log unavailable")

	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := fx.uc.Tick(ctx, "work")
	if err == nil {
		t.Fatalf("expected surfaced record failure")
	}
	if !out.Completed || out.Timer.TimeLeftSeconds != 0 {
		t.Fatalf("countdown must stay frozen when the record fails: %+v", out.Timer)
	}

	status, _ := fx.uc.Status(ctx)
	if status.Timers[0].TimeLeftSeconds != 0 {
		t.Fatalf("frozen countdown must remain visible: %+v", status.Timers[0])
	}
}

func TestCelebrationFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1, 300)
	fx.announcer.err = errors.New("popup closed")
	fx.notifier.err = errors.New("no notification daemon")

	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := fx.uc.Tick(ctx, "work")
	if err != nil {
		t.Fatalf("celebration failures must not fail the tick: %v", err)
	}
	if !out.Completed || out.SessionID == "" {
		t.Fatalf("record must still happen: %+v", out)
	}
	if out.Timer.TimeLeftSeconds != 1 {
		t.Fatalf("countdown must still rearm: %+v", out.Timer)
	}
}

func TestGoalIsLockedWhileRunning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1500, 300)

	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := fx.uc.SetGoal(ctx, dto.GoalInput{Mode: "work", Goal: "too late"})
	if !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected ErrTimerRunning, got %v", err)
	}

	if _, err := fx.uc.Pause(ctx, "work"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	out, err := fx.uc.SetGoal(ctx, dto.GoalInput{Mode: "work", Goal: "  allowed now  "})
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if out.Goal != "allowed now" {
		t.Fatalf("goal must be trimmed and applied: %+v", out)
	}
}

func TestResetAbandonsIntervalWithoutRecording(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)}
	fx := newFixture(t, clk, 1500, 300)

	if _, err := fx.uc.Start(ctx, "work"); err != nil {
		t.Fatalf("start: %v", err)
	}
	runDown(t, fx, "work", 5)

	out, err := fx.uc.Reset(ctx, "work")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if out.TimeLeftSeconds != 1500 || out.Running || out.SessionStart != nil {
		t.Fatalf("reset must rearm: %+v", out)
	}
	if len(fx.recorder.records) != 0 {
		t.Fatalf("reset must not record: %+v", fx.recorder.records)
	}
}
