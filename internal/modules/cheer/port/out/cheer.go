package out

import (
	"context"

	"pomoterm/internal/modules/cheer/domain"
)

// MessageStore persists the chat thread, oldest first.
type MessageStore interface {
	Load(ctx context.Context) (domain.Thread, error)
	Save(ctx context.Context, thread domain.Thread) error
}
