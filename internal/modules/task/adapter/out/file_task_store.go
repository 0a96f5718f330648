package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/task/domain"
	taskout "pomoterm/internal/modules/task/port/out"
)

type FileTaskStore struct {
	path string
}

func NewFileTaskStore(path string) taskout.TaskStore {
	return &FileTaskStore{path: path}
}

func (s *FileTaskStore) Load(_ context.Context) ([]domain.Task, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task list: %w", err)
	}
	var tasks []domain.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}
	return tasks, nil
}

func (s *FileTaskStore) Save(_ context.Context, tasks []domain.Task) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create task list dir: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	payload, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task list: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write task list: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace task list: %w", err)
	}
	return nil
}
