package out

import (
	"context"

	"pomoterm/internal/modules/session/domain"
)

// SessionStore persists the full ordered session log, most recent first.
type SessionStore interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}

// HistoryProjector maintains the read-side index used for stats queries.
type HistoryProjector interface {
	Upsert(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
	Stats(ctx context.Context) ([]domain.KindStats, error)
}
