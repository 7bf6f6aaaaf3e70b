package memory

import (
	"context"
	"time"

	"github.com/aidar/taskhive/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository в памяти
type ProjectRepository struct {
	s *Store
}

// Create создает новый проект
func (r *ProjectRepository) Create(_ context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teams[project.TeamID]; !ok {
		return domain.ErrTeamNotFound
	}

	project.CreatedAt = r.s.tick()
	project.UpdatedAt = project.CreatedAt
	r.s.projects[project.ProjectID] = copyProject(project)
	return nil
}

// GetByID получает проект по ID
func (r *ProjectRepository) GetByID(_ context.Context, projectID string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	project, ok := r.s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return copyProject(project), nil
}

// ListByTeams возвращает проекты перечисленных команд
func (r *ProjectRepository) ListByTeams(_ context.Context, teamIDs []string) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	projects := []*domain.Project{}
	for _, project := range r.s.projects {
		if _, ok := wanted[project.TeamID]; ok {
			projects = append(projects, copyProject(project))
		}
	}
	sortNewestFirst(projects, func(p *domain.Project) time.Time { return p.CreatedAt })
	return projects, nil
}

// Update сохраняет изменяемые поля проекта
func (r *ProjectRepository) Update(_ context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.projects[project.ProjectID]
	if !ok {
		return domain.ErrProjectNotFound
	}

	stored.Title = project.Title
	stored.Description = project.Description
	stored.UpdatedAt = r.s.tick()
	project.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete удаляет проект
func (r *ProjectRepository) Delete(_ context.Context, projectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.s.projects, projectID)
	return nil
}
