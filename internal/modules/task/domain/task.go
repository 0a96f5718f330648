package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is one line on the side list. The JSON field names are the persisted
// wire format.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("creation time is required")
	}
	return nil
}

// Toggled flips the completion mark.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
