package dto

import "time"

type MessageOutput struct {
	ID        string
	Text      string
	Timestamp time.Time
	Sender    string
}

type ThreadOutput struct {
	Messages []MessageOutput
}
