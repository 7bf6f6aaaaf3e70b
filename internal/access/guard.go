package access

import (
	"context"
	"log/slog"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/metrics"
)

// Guard is the single enforcement point in front of every read and write:
// it resolves the containment chain, evaluates the rule table and records
// the decision. Entity invariants are applied by the Prepare*/Apply* helpers.
type Guard struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewGuard creates a new Guard.
func NewGuard(resolver *Resolver, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		resolver: resolver,
		logger:   logger,
	}
}

// Team authorizes an action on a team.
func (g *Guard) Team(ctx context.Context, actor, teamID string, action Action) (Resolution, error) {
	res, err := g.resolver.ResolveTeam(ctx, actor, teamID)
	return g.enforce(ctx, action, res, err)
}

// Project authorizes an action on a project.
func (g *Guard) Project(ctx context.Context, actor, projectID string, action Action) (Resolution, error) {
	res, err := g.resolver.ResolveProject(ctx, actor, projectID)
	return g.enforce(ctx, action, res, err)
}

// Task authorizes an action on a task.
func (g *Guard) Task(ctx context.Context, actor, taskID string, action Action) (Resolution, error) {
	res, err := g.resolver.ResolveTask(ctx, actor, taskID)
	return g.enforce(ctx, action, res, err)
}

// Assignee checks that assigneeID is an effective member of the resolved team.
func (g *Guard) Assignee(ctx context.Context, res Resolution, assigneeID string) error {
	decision := CheckAssignee(res, assigneeID)
	g.record(ctx, decision, res)
	return decision.Err()
}

func (g *Guard) enforce(ctx context.Context, action Action, res Resolution, err error) (Resolution, error) {
	if err != nil {
		// Store failures are not access decisions
		return res, err
	}

	decision := Check(action, res)
	g.record(ctx, decision, res)
	if !decision.Allowed {
		return res, decision.Err()
	}

	return res, nil
}

func (g *Guard) record(ctx context.Context, decision Decision, res Resolution) {
	metrics.ObserveDecision(string(decision.Action), decision.Outcome())

	if !decision.Allowed {
		g.logger.InfoContext(ctx, "Access denied",
			"actor", res.Actor,
			"action", string(decision.Action),
			"target", res.Kind.String(),
			"role", res.Role.String(),
			"reason", string(decision.Reason),
		)
	}
}

// PrepareInvite checks the invite invariant and appends userID to the member
// set. The creator counts as a member even when absent from MemberIDs.
func PrepareInvite(team *domain.Team, userID string) error {
	if team.IsEffectiveMember(userID) {
		return domain.ErrAlreadyMember
	}

	team.MemberIDs = append(team.MemberIDs, userID)
	return nil
}

// PrepareRemoval checks the removal invariant and filters memberID out of the
// member set. Removing a non-member leaves the set unchanged.
func PrepareRemoval(team *domain.Team, memberID string) error {
	if team.IsCreator(memberID) {
		return domain.ErrCannotRemoveCreator
	}

	kept := make([]string, 0, len(team.MemberIDs))
	for _, id := range team.MemberIDs {
		if id != memberID {
			kept = append(kept, id)
		}
	}
	team.MemberIDs = kept
	return nil
}

// ApplyProjectPatch mutates only the fields present in the patch.
func ApplyProjectPatch(project *domain.Project, patch domain.ProjectPatch) {
	if patch.Title.Present() {
		project.Title = patch.Title.Value
	}
	if patch.Description.Set {
		project.Description = patch.Description.Value
	}
}

// ApplyTaskPatch mutates only the fields present in the patch. For the
// optional fields an explicit null or empty value clears the field.
func ApplyTaskPatch(task *domain.Task, patch domain.TaskPatch) {
	if patch.Title.Present() {
		task.Title = patch.Title.Value
	}
	if patch.Description.Set {
		task.Description = patch.Description.Value
	}
	if patch.Status.Present() {
		task.Status = patch.Status.Value
	}
	if patch.Priority.Present() {
		task.Priority = patch.Priority.Value
	}
	if patch.AssignedTo.Set {
		if assignee, ok := patch.AssigneeChange(); ok {
			task.AssignedTo = &assignee
		} else {
			task.AssignedTo = nil
		}
	}
	if patch.DueDate.Set {
		if patch.DueDate.Present() {
			due := patch.DueDate.Value
			task.DueDate = &due
		} else {
			task.DueDate = nil
		}
	}
}
