package dto

import "time"

type TaskOutput struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

type AddInput struct {
	Text string
}

type ListOutput struct {
	Tasks []TaskOutput
}
