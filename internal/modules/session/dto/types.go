package dto

import "time"

type SessionOutput struct {
	ID              string
	Kind            string
	StartTime       time.Time
	DurationSeconds int
	Goal            string
	Status          string
	DeletedAt       *time.Time
	// RemainingRetentionDays is only meaningful for trashed sessions.
	RemainingRetentionDays int
}

type RecordInput struct {
	Kind            string
	StartTime       time.Time
	DurationSeconds int
	Goal            string
}

type ListInput struct {
	// Status filters to one lifecycle status; empty means every status.
	Status string
}

type ListOutput struct {
	Sessions []SessionOutput
}

type EditInput struct {
	ID              string
	StartTime       *time.Time
	DurationSeconds *int
	Goal            *string
}

type BulkOutput struct {
	// Affected counts the sessions actually changed; ids that did not
	// resolve are tolerated and skipped.
	Affected int
}

type PurgeOutput struct {
	PurgedIDs []string
}

type StatsOutput struct {
	Kinds []KindStatsOutput
}

type KindStatsOutput struct {
	Kind         string
	Sessions     int
	TotalSeconds int
}
