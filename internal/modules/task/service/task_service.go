package service

import (
	"context"
	"fmt"
	"sync"

	"pomoterm/internal/modules/task/domain"
	taskout "pomoterm/internal/modules/task/port/out"
)

// TaskService owns the in-memory task list, newest first, with write-through
// persistence.
type TaskService struct {
	mu    sync.Mutex
	store taskout.TaskStore
	tasks []domain.Task
}

func NewTaskService(store taskout.TaskStore) (*TaskService, error) {
	loaded, err := store.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load task list: %w", err)
	}
	return &TaskService{store: store, tasks: loaded}, nil
}

func (s *TaskService) List(_ context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.tasks...)
}

// Add prepends a new task.
func (s *TaskService) Add(ctx context.Context, task domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = append([]domain.Task{task}, s.tasks...)
	s.mu.Unlock()
	return s.persist(ctx)
}

// Toggle flips the completion mark. Missing ids are tolerated.
func (s *TaskService) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	changed := false
	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks[i] = task.Toggled()
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if !changed {
		return nil
	}
	return s.persist(ctx)
}

// Remove deletes the task. Missing ids are tolerated.
func (s *TaskService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	removed := false
	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if !removed {
		return nil
	}
	return s.persist(ctx)
}

func (s *TaskService) persist(ctx context.Context) error {
	s.mu.Lock()
	snapshot := make([]domain.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("write task list: %w", err)
	}
	return nil
}
