package domain

import "time"

// Report is an exportable snapshot of the session history.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Rows        []ReportRow
	Stats       []ReportStats
}

type ReportRow struct {
	Kind            string
	StartTime       time.Time
	DurationSeconds int
	Goal            string
	Status          string
}

type ReportStats struct {
	Kind         string
	Sessions     int
	TotalSeconds int
}
