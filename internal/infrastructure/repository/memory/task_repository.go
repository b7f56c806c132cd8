package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtvision/fantasy-hoops/internal/domain/task"
)

type TaskRepository struct {
	mu    sync.RWMutex
	items map[string]task.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{items: make(map[string]task.Task)}
}

func (r *TaskRepository) Create(_ context.Context, t task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return fmt.Errorf("task %s already exists", t.ID)
	}
	r.items[t.ID] = t

	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (task.Task, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return task.Task{}, false, nil
	}

	return t, true, nil
}

func (r *TaskRepository) Update(_ context.Context, t task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; !exists {
		return fmt.Errorf("task %s does not exist", t.ID)
	}
	r.items[t.ID] = t

	return nil
}
