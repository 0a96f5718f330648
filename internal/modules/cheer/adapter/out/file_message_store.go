package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/cheer/domain"
	cheerout "pomoterm/internal/modules/cheer/port/out"
)

type FileMessageStore struct {
	path string
}

func NewFileMessageStore(path string) cheerout.MessageStore {
	return &FileMessageStore{path: path}
}

func (s *FileMessageStore) Load(_ context.Context) (domain.Thread, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read chat thread: %w", err)
	}
	var thread domain.Thread
	if err := json.Unmarshal(payload, &thread); err != nil {
		return nil, fmt.Errorf("decode chat thread: %w", err)
	}
	return thread, nil
}

func (s *FileMessageStore) Save(_ context.Context, thread domain.Thread) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create chat thread dir: %w", err)
	}
	if thread == nil {
		thread = domain.Thread{}
	}
	payload, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chat thread: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write chat thread: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace chat thread: %w", err)
	}
	return nil
}
