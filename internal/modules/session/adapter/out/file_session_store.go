package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/session/domain"
	sessionout "pomoterm/internal/modules/session/port/out"
)

// FileSessionStore keeps the full session log in one JSON array on disk,
// most recent first, matching the persisted wire format of domain.Session.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) sessionout.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load(_ context.Context) ([]domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session log: %w", err)
	}
	var sessions []domain.Session
	if err := json.Unmarshal(payload, &sessions); err != nil {
		return nil, fmt.Errorf("decode session log: %w", err)
	}
	return sessions, nil
}

func (s *FileSessionStore) Save(_ context.Context, sessions []domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	payload, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session log: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session log: %w", err)
	}
	return nil
}
