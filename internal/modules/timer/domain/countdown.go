package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

func (m Mode) Validate() error {
	switch m {
	case ModeWork, ModeBreak:
		return nil
	default:
		return fmt.Errorf("unsupported timer mode %q", string(m))
	}
}

// Modes lists every countdown in display order.
func Modes() []Mode {
	return []Mode{ModeWork, ModeBreak}
}

// Countdown is one mode's timer. The work and break countdowns are fully
// independent; pausing or resetting one never touches the other.
type Countdown struct {
	Mode            Mode
	DurationSeconds int
	TimeLeftSeconds int
	Running         bool
	SessionStart    *time.Time
	Goal            string
}

func NewCountdown(mode Mode, durationSeconds int) Countdown {
	return Countdown{
		Mode:            mode,
		DurationSeconds: durationSeconds,
		TimeLeftSeconds: durationSeconds,
	}
}

// Start begins or resumes the countdown. Starting an already-running
// countdown is a no-op, and the session start is only stamped on the first
// start of an interval so pauses never move it.
func (c Countdown) Start(now time.Time) Countdown {
	if c.Running {
		return c
	}
	c.Running = true
	if c.SessionStart == nil {
		c.SessionStart = &now
	}
	return c
}

// Pause freezes the remaining time. The session start survives so a later
// resume continues the same interval.
func (c Countdown) Pause() Countdown {
	c.Running = false
	return c
}

// Tick advances the countdown by one second. It reports completion the
// moment the remaining time reaches zero; the returned countdown is frozen
// at zero so the caller can read the finished interval before rolling over.
// Ticking a paused or already-finished countdown changes nothing.
func (c Countdown) Tick() (Countdown, bool) {
	if !c.Running || c.TimeLeftSeconds <= 0 {
		return c, false
	}
	c.TimeLeftSeconds--
	return c, c.TimeLeftSeconds == 0
}

// Rollover rearms the countdown: full duration, stopped, session start and
// goal cleared. Both the completion path and a manual reset land here; the
// next interval always starts with an empty goal.
func (c Countdown) Rollover() Countdown {
	c.TimeLeftSeconds = c.DurationSeconds
	c.Running = false
	c.SessionStart = nil
	c.Goal = ""
	return c
}

// SetGoal replaces the goal text. Callers gate this on the running state.
func (c Countdown) SetGoal(goal string) Countdown {
	c.Goal = goal
	return c
}

// Resize changes the configured duration. A countdown that has not been
// started yet follows the new duration immediately; a started one keeps its
// remaining time.
func (c Countdown) Resize(durationSeconds int) Countdown {
	if durationSeconds < 1 {
		return c
	}
	atRest := !c.Running && c.SessionStart == nil && c.TimeLeftSeconds == c.DurationSeconds
	c.DurationSeconds = durationSeconds
	if atRest {
		c.TimeLeftSeconds = durationSeconds
	}
	return c
}

// Snapshot is the persisted wire format of one countdown. The field names
// must round-trip exactly.
type Snapshot struct {
	TimeLeftSeconds int        `json:"timeLeftSeconds"`
	IsRunning       bool       `json:"isRunning"`
	SessionStart    *time.Time `json:"sessionStart"`
	CurrentGoal     string     `json:"currentGoal,omitempty"`
}

func (c Countdown) Snapshot() Snapshot {
	return Snapshot{
		TimeLeftSeconds: c.TimeLeftSeconds,
		IsRunning:       c.Running,
		SessionStart:    c.SessionStart,
		CurrentGoal:     c.Goal,
	}
}

// FromSnapshot rebuilds a countdown from persisted state. No ticks arrive
// while the process is down, so a countdown that was running comes back
// paused with its remaining time intact. Out-of-range remaining time resets
// to the full duration.
func FromSnapshot(mode Mode, durationSeconds int, snap Snapshot) Countdown {
	c := NewCountdown(mode, durationSeconds)
	if snap.TimeLeftSeconds > 0 && snap.TimeLeftSeconds <= durationSeconds {
		c.TimeLeftSeconds = snap.TimeLeftSeconds
	}
	c.SessionStart = snap.SessionStart
	c.Goal = snap.CurrentGoal
	return c
}
