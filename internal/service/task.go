package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/metrics"
	"github.com/aidar/taskhive/internal/repository"
)

// TaskService handles business logic for tasks on a project board
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	guard    *access.Guard
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, guard *access.Guard) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		guard:    guard,
	}
}

// CreateTask creates a task in a project; status defaults to todo and priority to medium
func (s *TaskService) CreateTask(ctx context.Context, actor string, input domain.NewTask) (*domain.Task, error) {
	res, err := s.guard.Project(ctx, actor, input.ProjectID, access.ActionCreateTask)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		TaskID:      uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   res.Project.ProjectID,
		DueDate:     input.DueDate,
		CreatedBy:   actor,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if input.AssignedTo != "" {
		if err := s.guard.Assignee(ctx, res, input.AssignedTo); err != nil {
			return nil, err
		}
		assignee := input.AssignedTo
		task.AssignedTo = &assignee
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("task", "create")

	// Return the created task
	return s.view(ctx, task.TaskID)
}

// ListProjectTasks returns the tasks of a project, newest first
func (s *TaskService) ListProjectTasks(ctx context.Context, actor, projectID string) ([]*domain.Task, error) {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionReadTask)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, res.Project.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, tasks...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a task
func (s *TaskService) GetTask(ctx context.Context, actor, taskID string) (*domain.Task, error) {
	res, err := s.guard.Task(ctx, actor, taskID, access.ActionReadTask)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, res.Task); err != nil {
		return nil, err
	}
	return res.Task, nil
}

// UpdateTask applies a partial update. Any team member may change any field,
// but a new assignee must be an effective member of the same team.
func (s *TaskService) UpdateTask(ctx context.Context, actor, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	res, err := s.guard.Task(ctx, actor, taskID, access.ActionUpdateTask)
	if err != nil {
		return nil, err
	}

	if assignee, ok := patch.AssigneeChange(); ok {
		if err := s.guard.Assignee(ctx, res, assignee); err != nil {
			return nil, err
		}
	}

	task := res.Task
	access.ApplyTaskPatch(task, patch)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("task", "update")

	return s.view(ctx, task.TaskID)
}

// DeleteTask deletes a task; allowed for the task creator or the team creator
func (s *TaskService) DeleteTask(ctx context.Context, actor, taskID string) error {
	res, err := s.guard.Task(ctx, actor, taskID, access.ActionDeleteTask)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, res.Task.TaskID); err != nil {
		return err
	}
	metrics.ObserveMutation("task", "delete")

	return nil
}

// view re-reads the task after a write and fills in display fields
func (s *TaskService) view(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// populate fills Creator and Assignee; a vanished user leaves the field unset
func (s *TaskService) populate(ctx context.Context, tasks ...*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, 0, 2*len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.UserIDs()...)
	}

	directory, err := userDirectory(ctx, s.userRepo, ids)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		task.Creator = lookup(directory, task.CreatedBy)
		task.Assignee = nil
		if task.AssignedTo != nil {
			task.Assignee = lookup(directory, *task.AssignedTo)
		}
	}
	return nil
}
