package out

import (
	"context"
	"time"

	"pomoterm/internal/modules/timer/domain"
)

// StateStore persists one snapshot per mode so countdowns survive restarts.
type StateStore interface {
	Load(ctx context.Context, mode domain.Mode) (domain.Snapshot, bool, error)
	Save(ctx context.Context, mode domain.Mode, snap domain.Snapshot) error
}

// SessionRecorder appends a finished interval to the session log and returns
// the new record's id.
type SessionRecorder interface {
	RecordCompleted(ctx context.Context, kind string, start time.Time, durationSeconds int, goal string) (string, error)
}

// CompletionAnnouncer posts an in-app celebration for a finished interval.
type CompletionAnnouncer interface {
	AnnounceCompletion(ctx context.Context, mode string) error
}

// Notifier delivers a desktop notification. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
