package dto

import "time"

type TimerOutput struct {
	Mode            string
	DurationSeconds int
	TimeLeftSeconds int
	Running         bool
	SessionStart    *time.Time
	Goal            string
}

type StatusOutput struct {
	Timers []TimerOutput
}

type GoalInput struct {
	Mode string
	Goal string
}

type TickOutput struct {
	Timer TimerOutput
	// Completed is true on the tick that finished the interval; SessionID
	// then names the record appended to the session log.
	Completed bool
	SessionID string
}
