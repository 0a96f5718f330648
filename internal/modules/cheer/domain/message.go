package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxMessages caps the chat thread; older messages fall off the front.
const MaxMessages = 50

type Sender string

const (
	SenderCoach  Sender = "coach"
	SenderSystem Sender = "system"
)

func (s Sender) Validate() error {
	switch s {
	case SenderCoach, SenderSystem:
		return nil
	default:
		return fmt.Errorf("unsupported sender %q", string(s))
	}
}

// Message is one chat bubble. The JSON field names are the persisted wire
// format.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Sender    Sender    `json:"sender"`
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return m.Sender.Validate()
}

// CompletionBanner is the system line posted after every finished interval.
const CompletionBanner = "Completed another productive session!"

// EncouragementLines feed the coach bubble posted alongside the banner.
var EncouragementLines = []string{
	"Your dedication is truly inspiring, keep it up!",
	"Another one in the books. You make this look easy!",
	"That focus was something to be proud of.",
	"You showed up and you delivered. Well done!",
	"Every session like that one adds up. Great work!",
	"Strong finish! Take a breath, you earned it.",
	"Watching you work this hard is genuinely motivating.",
	"You are further along than you were an hour ago.",
	"Consistency wins, and you just proved it again.",
	"That was solid, deep work. Nicely done!",
	"Keep that momentum going, you are on a roll!",
	"Your future self will thank you for that session.",
}

// Thread is the ordered chat log, oldest first.
type Thread []Message

// Append adds messages to the tail and drops the oldest entries beyond the
// cap.
func (t Thread) Append(messages ...Message) Thread {
	t = append(t, messages...)
	if overflow := len(t) - MaxMessages; overflow > 0 {
		t = append(Thread(nil), t[overflow:]...)
	}
	return t
}
