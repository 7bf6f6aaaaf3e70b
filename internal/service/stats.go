package service

import (
	"context"
	"time"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository"
)

// AssigneeStats represents open work for one assignee
type AssigneeStats struct {
	UserID    string `json:"user_id"`
	OpenTasks int    `json:"open_tasks"`
	DoneTasks int    `json:"done_tasks"`
}

// BoardStats represents task counts for a project board
type BoardStats struct {
	ProjectID  string                      `json:"project_id"`
	TotalTasks int                         `json:"total_tasks"`
	ByStatus   map[domain.TaskStatus]int   `json:"by_status"`
	ByPriority map[domain.TaskPriority]int `json:"by_priority"`
	Overdue    int                         `json:"overdue"`
	Unassigned int                         `json:"unassigned"`
	Assignees  []AssigneeStats             `json:"assignees"`
}

// StatsService handles board statistics queries
type StatsService struct {
	taskRepo repository.TaskRepository
	guard    *access.Guard
	now      func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, guard *access.Guard) *StatsService {
	return &StatsService{
		taskRepo: taskRepo,
		guard:    guard,
		now:      time.Now,
	}
}

// GetBoardStats returns task counts for a project the actor can read
func (s *StatsService) GetBoardStats(ctx context.Context, actor, projectID string) (*BoardStats, error) {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionReadTask)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, res.Project.ProjectID)
	if err != nil {
		return nil, err
	}

	return summarize(res.Project.ProjectID, tasks, s.now()), nil
}

func summarize(projectID string, tasks []*domain.Task, now time.Time) *BoardStats {
	stats := &BoardStats{
		ProjectID:  projectID,
		TotalTasks: len(tasks),
		ByStatus:   make(map[domain.TaskStatus]int, len(domain.TaskStatuses)),
		ByPriority: make(map[domain.TaskPriority]int, len(domain.TaskPriorities)),
		Assignees:  []AssigneeStats{},
	}
	// Every column is reported, empty ones included
	for _, status := range domain.TaskStatuses {
		stats.ByStatus[status] = 0
	}
	for _, priority := range domain.TaskPriorities {
		stats.ByPriority[priority] = 0
	}

	index := make(map[string]int)
	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
		if task.IsOverdue(now) {
			stats.Overdue++
		}

		if task.AssignedTo == nil {
			stats.Unassigned++
			continue
		}

		i, ok := index[*task.AssignedTo]
		if !ok {
			i = len(stats.Assignees)
			index[*task.AssignedTo] = i
			stats.Assignees = append(stats.Assignees, AssigneeStats{UserID: *task.AssignedTo})
		}
		if task.Status == domain.TaskStatusDone {
			stats.Assignees[i].DoneTasks++
		} else {
			stats.Assignees[i].OpenTasks++
		}
	}

	return stats
}
