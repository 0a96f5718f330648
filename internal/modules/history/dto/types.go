package dto

import "time"

type EntryOutput struct {
	ID              string
	Kind            string
	StartTime       time.Time
	DurationSeconds int
	Goal            string
	Status          string
	// RemainingRetentionDays is only meaningful for trashed entries.
	RemainingRetentionDays int
}

type QueryInput struct {
	// Filter names one lifecycle bucket: active, archived, or trashed.
	Filter string
}

type QueryOutput struct {
	Entries []EntryOutput
}

type StatsOutput struct {
	Kinds []KindStatsOutput
}

type KindStatsOutput struct {
	Kind         string
	Sessions     int
	TotalSeconds int
}

type ExportInput struct {
	Dir   string
	Title string
}

type ExportOutput struct {
	Path string
}

type BulkOutput struct {
	Affected int
}
