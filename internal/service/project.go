package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/metrics"
	"github.com/aidar/taskhive/internal/repository"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	guard       *access.Guard
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	guard *access.Guard,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		guard:       guard,
	}
}

// CreateProject creates a project under a team the actor belongs to
func (s *ProjectService) CreateProject(ctx context.Context, actor string, input domain.NewProject) (*domain.Project, error) {
	res, err := s.guard.Team(ctx, actor, input.TeamID, access.ActionCreateProject)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ProjectID:   uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		TeamID:      res.Team.TeamID,
		CreatedBy:   actor,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("project", "create")

	// Return the created project
	return s.view(ctx, project.ProjectID, res.Team)
}

// ListProjects returns projects of every team the actor belongs to
func (s *ProjectService) ListProjects(ctx context.Context, actor string) ([]*domain.Project, error) {
	teams, err := s.teamRepo.ListByUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]string, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.TeamID)
	}

	projects, err := s.projectRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, projects, teams...); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListTeamProjects returns the projects of one team
func (s *ProjectService) ListTeamProjects(ctx context.Context, actor, teamID string) ([]*domain.Project, error) {
	res, err := s.guard.Team(ctx, actor, teamID, access.ActionListTeamProjects)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByTeams(ctx, []string{res.Team.TeamID})
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, projects, res.Team); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a project
func (s *ProjectService) GetProject(ctx context.Context, actor, projectID string) (*domain.Project, error) {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionReadProject)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, []*domain.Project{res.Project}, res.Team); err != nil {
		return nil, err
	}
	return res.Project, nil
}

// ListMembers returns the effective members of the project's team
func (s *ProjectService) ListMembers(ctx context.Context, actor, projectID string) ([]domain.TeamMember, error) {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionReadProject)
	if err != nil {
		return nil, err
	}

	return memberSummaries(ctx, s.userRepo, res.Team.EffectiveMemberIDs())
}

// UpdateProject applies a partial update; any team member may update
func (s *ProjectService) UpdateProject(ctx context.Context, actor, projectID string, patch domain.ProjectPatch) (*domain.Project, error) {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionUpdateProject)
	if err != nil {
		return nil, err
	}

	project := res.Project
	access.ApplyProjectPatch(project, patch)

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	metrics.ObserveMutation("project", "update")

	return s.view(ctx, project.ProjectID, res.Team)
}

// DeleteProject deletes a project; only its own creator may do so
func (s *ProjectService) DeleteProject(ctx context.Context, actor, projectID string) error {
	res, err := s.guard.Project(ctx, actor, projectID, access.ActionDeleteProject)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, res.Project.ProjectID); err != nil {
		return err
	}
	metrics.ObserveMutation("project", "delete")

	return nil
}

// view re-reads the project after a write and fills in display fields
func (s *ProjectService) view(ctx context.Context, projectID string, team *domain.Team) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, []*domain.Project{project}, team); err != nil {
		return nil, err
	}
	return project, nil
}

// populate fills TeamName and Creator. Teams already loaded by the caller are
// reused; a team or user that vanished leaves the field unset.
func (s *ProjectService) populate(ctx context.Context, projects []*domain.Project, known ...*domain.Team) error {
	if len(projects) == 0 {
		return nil
	}

	names := make(map[string]string, len(known))
	for _, team := range known {
		names[team.TeamID] = team.TeamName
	}

	creators := make([]string, 0, len(projects))
	for _, project := range projects {
		creators = append(creators, project.CreatedBy)

		if _, ok := names[project.TeamID]; ok {
			continue
		}
		team, err := s.teamRepo.GetByID(ctx, project.TeamID)
		switch {
		case err == nil:
			names[project.TeamID] = team.TeamName
		case errors.Is(err, domain.ErrNotFound):
			names[project.TeamID] = ""
		default:
			return err
		}
	}

	directory, err := userDirectory(ctx, s.userRepo, creators)
	if err != nil {
		return err
	}

	for _, project := range projects {
		project.TeamName = names[project.TeamID]
		project.Creator = lookup(directory, project.CreatedBy)
	}
	return nil
}
