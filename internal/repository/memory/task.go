package memory

import (
	"context"
	"time"

	"github.com/aidar/taskhive/internal/domain"
)

// TaskRepository реализует repository.TaskRepository в памяти
type TaskRepository struct {
	s *Store
}

// Create создает новую задачу
func (r *TaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if task.AssignedTo != nil {
		if _, ok := r.s.users[*task.AssignedTo]; !ok {
			return domain.ErrInvalidAssignment
		}
	}

	task.CreatedAt = r.s.tick()
	task.UpdatedAt = task.CreatedAt
	r.s.tasks[task.TaskID] = copyTask(task)
	return nil
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// ListByProject возвращает задачи проекта, новые первыми
func (r *TaskRepository) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := []*domain.Task{}
	for _, task := range r.s.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, copyTask(task))
		}
	}
	sortNewestFirst(tasks, func(t *domain.Task) time.Time { return t.CreatedAt })
	return tasks, nil
}

// Update сохраняет изменяемые поля задачи
func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tasks[task.TaskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.AssignedTo != nil {
		if _, ok := r.s.users[*task.AssignedTo]; !ok {
			return domain.ErrInvalidAssignment
		}
	}

	updated := copyTask(task)
	updated.ProjectID = stored.ProjectID
	updated.CreatedBy = stored.CreatedBy
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.s.tick()
	r.s.tasks[task.TaskID] = updated
	task.UpdatedAt = updated.UpdatedAt
	return nil
}

// Delete удаляет задачу
func (r *TaskRepository) Delete(_ context.Context, taskID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, taskID)
	return nil
}
