package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/timer/domain"
	timerout "pomoterm/internal/modules/timer/port/out"
)

// FileStateStore keeps one snapshot file per mode under the state directory,
// so the two countdowns never clobber each other.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(stateDir string) timerout.StateStore {
	return &FileStateStore{dir: stateDir}
}

func (s *FileStateStore) path(mode domain.Mode) string {
	return filepath.Join(s.dir, string(mode)+".json")
}

func (s *FileStateStore) Load(_ context.Context, mode domain.Mode) (domain.Snapshot, bool, error) {
	payload, err := os.ReadFile(s.path(mode))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, false, nil
		}
		return domain.Snapshot{}, false, fmt.Errorf("read %s countdown state: %w", mode, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode %s countdown state: %w", mode, err)
	}
	return snap, true, nil
}

func (s *FileStateStore) Save(_ context.Context, mode domain.Mode, snap domain.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s countdown state: %w", mode, err)
	}
	if err := os.WriteFile(s.path(mode), payload, 0o644); err != nil {
		return fmt.Errorf("write %s countdown state: %w", mode, err)
	}
	return nil
}
