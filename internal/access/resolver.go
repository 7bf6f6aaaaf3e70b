package access

import (
	"context"
	"errors"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository"
)

// Role is the effective role of an actor for a team, project or task.
// Project and task roles are inherited unchanged from the owning team.
type Role int

const (
	// RoleNotFound means the target or a link of its containment chain is missing.
	RoleNotFound Role = iota
	// RoleOutsider means the target exists but the actor is not in the team.
	RoleOutsider
	// RoleMember means the actor is in the team member set.
	RoleMember
	// RoleCreator means the actor created the team. Creator includes Member.
	RoleCreator
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleNotFound:
		return "not-found"
	case RoleOutsider:
		return "outsider"
	case RoleMember:
		return "member"
	case RoleCreator:
		return "creator"
	default:
		return "unknown"
	}
}

// IsMember reports whether the role satisfies a Member requirement.
func (r Role) IsMember() bool {
	return r >= RoleMember
}

// TargetKind identifies which level of the chain was resolved.
type TargetKind int

// Target kinds, from the root of the containment chain down.
const (
	TargetTeam TargetKind = iota
	TargetProject
	TargetTask
)

// String returns the entity name of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetTeam:
		return "team"
	case TargetProject:
		return "project"
	case TargetTask:
		return "task"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of walking the containment chain for one target.
// Entities below the target kind are nil; Team is set whenever Role != RoleNotFound.
type Resolution struct {
	Kind    TargetKind
	Role    Role
	Actor   string
	Team    *domain.Team
	Project *domain.Project
	Task    *domain.Task
}

// RoleInTeam computes a user's role in a loaded team.
func RoleInTeam(team *domain.Team, userID string) Role {
	switch {
	case team == nil:
		return RoleNotFound
	case team.IsCreator(userID):
		return RoleCreator
	case team.IsEffectiveMember(userID):
		return RoleMember
	default:
		return RoleOutsider
	}
}

// Resolver loads the Team, Project->Team or Task->Project->Team chain and
// derives the actor's role from the team at its root. It never writes.
type Resolver struct {
	teams    repository.TeamRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

// NewResolver creates a new Resolver.
func NewResolver(
	teams repository.TeamRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
) *Resolver {
	return &Resolver{
		teams:    teams,
		projects: projects,
		tasks:    tasks,
	}
}

// ResolveTeam resolves the actor's role for a team.
func (r *Resolver) ResolveTeam(ctx context.Context, actor, teamID string) (Resolution, error) {
	res := Resolution{Kind: TargetTeam, Actor: actor}

	team, err := r.teams.GetByID(ctx, teamID)
	if err != nil {
		return notFoundOr(res, err)
	}

	res.Team = team
	res.Role = RoleInTeam(team, actor)
	return res, nil
}

// ResolveProject resolves the actor's role for a project through its team.
func (r *Resolver) ResolveProject(ctx context.Context, actor, projectID string) (Resolution, error) {
	res := Resolution{Kind: TargetProject, Actor: actor}

	project, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		return notFoundOr(res, err)
	}

	team, err := r.teams.GetByID(ctx, project.TeamID)
	if err != nil {
		// Dangling team reference: the project is unreachable
		return notFoundOr(res, err)
	}

	res.Project = project
	res.Team = team
	res.Role = RoleInTeam(team, actor)
	return res, nil
}

// ResolveTask resolves the actor's role for a task through its project and team.
func (r *Resolver) ResolveTask(ctx context.Context, actor, taskID string) (Resolution, error) {
	res := Resolution{Kind: TargetTask, Actor: actor}

	task, err := r.tasks.GetByID(ctx, taskID)
	if err != nil {
		return notFoundOr(res, err)
	}

	projectRes, err := r.ResolveProject(ctx, actor, task.ProjectID)
	if err != nil {
		return res, err
	}
	if projectRes.Role == RoleNotFound {
		return res, nil
	}

	res.Task = task
	res.Project = projectRes.Project
	res.Team = projectRes.Team
	res.Role = projectRes.Role
	return res, nil
}

// notFoundOr turns store not-found errors into a RoleNotFound resolution and
// passes every other store failure through untouched.
func notFoundOr(res Resolution, err error) (Resolution, error) {
	if errors.Is(err, domain.ErrNotFound) {
		res.Role = RoleNotFound
		return res, nil
	}
	return res, err
}
