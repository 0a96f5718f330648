package service

import (
	"context"
	"fmt"
	"sync"

	"pomoterm/internal/modules/session/domain"
	sessionout "pomoterm/internal/modules/session/port/out"
	"pomoterm/internal/platform/clock"
	"pomoterm/internal/platform/tx"
)

// SessionService owns the canonical session log. All mutations happen on the
// in-memory list first and are then written through to the store and the
// read-side projector; a persistence failure never rolls the list back.
type SessionService struct {
	mu        sync.Mutex
	clock     clock.Clock
	tx        tx.Manager
	store     sessionout.SessionStore
	projector sessionout.HistoryProjector
	sessions  []domain.Session
}

func NewSessionService(clk clock.Clock, txm tx.Manager, store sessionout.SessionStore, projector sessionout.HistoryProjector) (*SessionService, error) {
	svc := &SessionService{clock: clk, tx: txm, store: store, projector: projector}
	loaded, err := store.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load session log: %w", err)
	}
	svc.sessions = loaded
	return svc, nil
}

// List returns a copy of the log, most recent first, optionally filtered to
// one status. An empty status returns everything.
func (s *SessionService) List(_ context.Context, status domain.Status) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if status == "" || sess.Status == status {
			out = append(out, sess)
		}
	}
	return out
}

// Get returns the session with the given id, if present.
func (s *SessionService) Get(_ context.Context, id string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return domain.Session{}, false
}

// Append prepends a new record to the log.
func (s *SessionService) Append(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions = append([]domain.Session{session}, s.sessions...)
	s.mu.Unlock()
	return s.persist(ctx, []domain.Session{session}, nil)
}

// Update merges a partial edit into the session. A missing id is tolerated
// as a no-op.
func (s *SessionService) Update(ctx context.Context, id string, patch domain.Patch) error {
	s.mu.Lock()
	updated, ok := s.applyLocked(id, func(sess domain.Session) domain.Session {
		return sess.Apply(patch)
	})
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.persist(ctx, []domain.Session{updated}, nil)
}

// Archive moves the session to the archive. Missing ids are tolerated.
func (s *SessionService) Archive(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	updated, ok := s.applyLocked(id, domain.Session.Archived)
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, s.persist(ctx, []domain.Session{updated}, nil)
}

// Trash moves the session to the trash and starts its retention clock.
func (s *SessionService) Trash(ctx context.Context, id string) (bool, error) {
	now := s.clock.Now()
	s.mu.Lock()
	updated, ok := s.applyLocked(id, func(sess domain.Session) domain.Session {
		return sess.Trashed(now)
	})
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, s.persist(ctx, []domain.Session{updated}, nil)
}

// Restore brings an archived or trashed session back to active and clears
// its deletion time.
func (s *SessionService) Restore(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	updated, ok := s.applyLocked(id, domain.Session.Restored)
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, s.persist(ctx, []domain.Session{updated}, nil)
}

// Remove permanently deletes the record. Irreversible; missing ids are
// tolerated.
func (s *SessionService) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.mu.Unlock()
	if !removed {
		return false, nil
	}
	return true, s.persist(ctx, nil, []string{id})
}

// PurgeExpiredTrash permanently removes every trashed session whose
// retention window has elapsed. It is idempotent and cheap when nothing has
// expired, so callers invoke it on every observation cycle.
func (s *SessionService) PurgeExpiredTrash(ctx context.Context, retentionDays int) ([]string, error) {
	now := s.clock.Now()
	s.mu.Lock()
	var purged []string
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.RetentionExpired(now, retentionDays) {
			purged = append(purged, sess.ID)
			continue
		}
		kept = append(kept, sess)
	}
	s.sessions = kept
	s.mu.Unlock()
	if len(purged) == 0 {
		return nil, nil
	}
	return purged, s.persist(ctx, nil, purged)
}

// Bulk lifecycle operations. Each id is handled independently: one missing
// id must not block the rest, and the affected count reflects only the
// records actually changed.

func (s *SessionService) BulkArchive(ctx context.Context, ids []string) (int, error) {
	return s.bulk(ctx, ids, domain.Session.Archived)
}

func (s *SessionService) BulkTrash(ctx context.Context, ids []string) (int, error) {
	now := s.clock.Now()
	return s.bulk(ctx, ids, func(sess domain.Session) domain.Session {
		return sess.Trashed(now)
	})
}

func (s *SessionService) BulkRestore(ctx context.Context, ids []string) (int, error) {
	return s.bulk(ctx, ids, domain.Session.Restored)
}

func (s *SessionService) BulkRemove(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	var removed []string
	for _, id := range ids {
		if s.removeLocked(id) {
			removed = append(removed, id)
		}
	}
	s.mu.Unlock()
	if len(removed) == 0 {
		return 0, nil
	}
	return len(removed), s.persist(ctx, nil, removed)
}

// Stats reads the per-kind aggregation from the projector.
func (s *SessionService) Stats(ctx context.Context) ([]domain.KindStats, error) {
	return s.projector.Stats(ctx)
}

func (s *SessionService) bulk(ctx context.Context, ids []string, transition func(domain.Session) domain.Session) (int, error) {
	s.mu.Lock()
	var touched []domain.Session
	for _, id := range ids {
		if updated, ok := s.applyLocked(id, transition); ok {
			touched = append(touched, updated)
		}
	}
	s.mu.Unlock()
	if len(touched) == 0 {
		return 0, nil
	}
	return len(touched), s.persist(ctx, touched, nil)
}

func (s *SessionService) applyLocked(id string, transition func(domain.Session) domain.Session) (domain.Session, bool) {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions[i] = transition(sess)
			return s.sessions[i], true
		}
	}
	return domain.Session{}, false
}

func (s *SessionService) removeLocked(id string) bool {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// persist writes the full log through to the store and syncs the projector
// for the touched records, grouped under one transactional boundary.
func (s *SessionService) persist(ctx context.Context, upserted []domain.Session, removed []string) error {
	s.mu.Lock()
	snapshot := make([]domain.Session, len(s.sessions))
	copy(snapshot, s.sessions)
	s.mu.Unlock()

	return s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("write session log: %w", err)
		}
		for _, sess := range upserted {
			if err := s.projector.Upsert(ctx, sess); err != nil {
				return fmt.Errorf("project session %s: %w", sess.ID, err)
			}
		}
		for _, id := range removed {
			if err := s.projector.Delete(ctx, id); err != nil {
				return fmt.Errorf("unproject session %s: %w", id, err)
			}
		}
		return nil
	})
}

// ReprojectAll rebuilds the read-side index from the canonical log.
func (s *SessionService) ReprojectAll(ctx context.Context) error {
	s.mu.Lock()
	snapshot := make([]domain.Session, len(s.sessions))
	copy(snapshot, s.sessions)
	s.mu.Unlock()

	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, sess := range snapshot {
		if err := s.projector.Upsert(ctx, sess); err != nil {
			return err
		}
	}
	return nil
}
