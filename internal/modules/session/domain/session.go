package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// DefaultTrashRetentionDays is how long a trashed session is kept before it
// becomes eligible for permanent removal.
const DefaultTrashRetentionDays = 30

type Kind string

const (
	KindWork  Kind = "work"
	KindBreak Kind = "break"
)

func (k Kind) Validate() error {
	switch k {
	case KindWork, KindBreak:
		return nil
	default:
		return fmt.Errorf("unsupported session kind %q", string(k))
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusTrashed  Status = "trashed"
)

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusArchived, StatusTrashed:
		return nil
	default:
		return fmt.Errorf("unsupported session status %q", string(s))
	}
}

// Session is one completed work or break interval. The JSON field names are
// the persisted wire format and must round-trip exactly.
type Session struct {
	ID              string     `json:"id"`
	Kind            Kind       `json:"kind"`
	StartTime       time.Time  `json:"startTime"`
	DurationSeconds int        `json:"durationSeconds"`
	Goal            string     `json:"goal,omitempty"`
	Status          Status     `json:"status"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := s.Kind.Validate(); err != nil {
		return err
	}
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if s.StartTime.IsZero() {
		return fmt.Errorf("start time is required")
	}
	if s.DurationSeconds < 1 {
		return fmt.Errorf("duration must be at least one second, got %d", s.DurationSeconds)
	}
	if s.Status == StatusTrashed && s.DeletedAt == nil {
		return fmt.Errorf("trashed session must carry a deletion time")
	}
	if s.Status != StatusTrashed && s.DeletedAt != nil {
		return fmt.Errorf("deletion time is only valid while trashed")
	}
	return nil
}

// Archived returns the session moved to the archive. Archiving never carries
// a deletion time.
func (s Session) Archived() Session {
	s.Status = StatusArchived
	s.DeletedAt = nil
	return s
}

// Trashed returns the session moved to the trash with its retention clock
// started at now. Trashing an already-trashed session restarts the clock.
func (s Session) Trashed(now time.Time) Session {
	s.Status = StatusTrashed
	s.DeletedAt = &now
	return s
}

// Restored returns the session back in the active list. Both archived and
// trashed sessions restore to active.
func (s Session) Restored() Session {
	s.Status = StatusActive
	s.DeletedAt = nil
	return s
}

// RemainingRetentionDays reports whole days until a trashed session is
// eligible for purge. Non-trashed sessions have no retention clock and
// report zero.
func (s Session) RemainingRetentionDays(now time.Time, retentionDays int) int {
	if s.Status != StatusTrashed || s.DeletedAt == nil {
		return 0
	}
	elapsed := int(now.Sub(*s.DeletedAt).Hours() / 24)
	if remaining := retentionDays - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// RetentionExpired reports whether a trashed session has outlived the
// retention window, measured in whole elapsed days.
func (s Session) RetentionExpired(now time.Time, retentionDays int) bool {
	if s.Status != StatusTrashed || s.DeletedAt == nil {
		return false
	}
	return int(now.Sub(*s.DeletedAt).Hours()/24) >= retentionDays
}

// Patch is a partial update. Nil fields are left untouched. Status changes
// go through the lifecycle operations, not through patches.
type Patch struct {
	StartTime       *time.Time
	DurationSeconds *int
	Goal            *string
}

// Apply merges the patch into the session. The caller is responsible for
// validating patch values first; Apply preserves the duration invariant by
// ignoring non-positive durations.
func (s Session) Apply(p Patch) Session {
	if p.StartTime != nil && !p.StartTime.IsZero() {
		s.StartTime = *p.StartTime
	}
	if p.DurationSeconds != nil && *p.DurationSeconds >= 1 {
		s.DurationSeconds = *p.DurationSeconds
	}
	if p.Goal != nil {
		s.Goal = *p.Goal
	}
	return s
}

// KindStats is one row of the read-side aggregation: how many sessions of a
// kind exist outside the trash and how much time they cover.
type KindStats struct {
	Kind         Kind
	Sessions     int
	TotalSeconds int
}
