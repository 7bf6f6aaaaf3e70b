package access

import (
	"fmt"

	"github.com/aidar/taskhive/internal/domain"
)

// Action names an operation subject to the rule table.
type Action string

// Actions covered by the rule table.
const (
	ActionReadTeam         Action = "team.read"
	ActionListTeamProjects Action = "team.list_projects"
	ActionInviteMember     Action = "team.invite"
	ActionRemoveMember     Action = "team.remove_member"
	ActionCreateProject    Action = "project.create"
	ActionReadProject      Action = "project.read"
	ActionUpdateProject    Action = "project.update"
	ActionDeleteProject    Action = "project.delete"
	ActionReadTask         Action = "task.read"
	ActionCreateTask       Action = "task.create"
	ActionUpdateTask       Action = "task.update"
	ActionDeleteTask       Action = "task.delete"
	ActionAssignTask       Action = "task.assign"
)

// Reason explains a denial.
type Reason string

// Deny reasons. Callers map them to distinct outward signals.
const (
	ReasonNotFound          Reason = "not_found"
	ReasonForbidden         Reason = "forbidden"
	ReasonInvalidAssignment Reason = "invalid_assignment"
)

// Decision is the result of evaluating the rule table.
type Decision struct {
	Action  Action
	Allowed bool
	Reason  Reason
	Kind    TargetKind
	Message string
}

// Outcome returns "allow" or the deny reason; used as a metrics label.
func (d Decision) Outcome() string {
	if d.Allowed {
		return "allow"
	}
	return string(d.Reason)
}

// Err converts a denial into the matching domain error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	switch d.Reason {
	case ReasonNotFound:
		switch d.Kind {
		case TargetTeam:
			return domain.ErrTeamNotFound
		case TargetProject:
			return domain.ErrProjectNotFound
		case TargetTask:
			return domain.ErrTaskNotFound
		}
		return domain.ErrNotFound
	case ReasonInvalidAssignment:
		return domain.ErrInvalidAssignment
	default:
		if d.Message == "" {
			return domain.ErrForbidden
		}
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Message)
	}
}

func allow(action Action, kind TargetKind) Decision {
	return Decision{Action: action, Allowed: true, Kind: kind}
}

func deny(action Action, kind TargetKind, reason Reason, message string) Decision {
	return Decision{Action: action, Kind: kind, Reason: reason, Message: message}
}

// Check evaluates the rule table for the resolved target. It is pure: all
// state it needs is carried by the Resolution.
func Check(action Action, res Resolution) Decision {
	if res.Role == RoleNotFound || res.Team == nil {
		return deny(action, res.Kind, ReasonNotFound, "")
	}

	// Every rule requires effective membership in the owning team first.
	if !res.Role.IsMember() {
		return deny(action, res.Kind, ReasonForbidden, "not a team member")
	}

	switch action {
	case ActionReadTeam, ActionListTeamProjects, ActionInviteMember, ActionCreateProject,
		ActionReadProject, ActionUpdateProject,
		ActionReadTask, ActionCreateTask, ActionUpdateTask, ActionAssignTask:
		return allow(action, res.Kind)

	case ActionRemoveMember:
		if res.Role != RoleCreator {
			return deny(action, res.Kind, ReasonForbidden, "only team creator can remove members")
		}
		return allow(action, res.Kind)

	case ActionDeleteProject:
		// Team creators get no implicit right here: only the project's own creator.
		if res.Project == nil {
			return deny(action, res.Kind, ReasonNotFound, "")
		}
		if res.Project.CreatedBy != res.Actor {
			return deny(action, res.Kind, ReasonForbidden, "only project creator can delete project")
		}
		return allow(action, res.Kind)

	case ActionDeleteTask:
		if res.Task == nil {
			return deny(action, res.Kind, ReasonNotFound, "")
		}
		if res.Task.CreatedBy != res.Actor && res.Role != RoleCreator {
			return deny(action, res.Kind, ReasonForbidden, "only task creator or team creator can delete task")
		}
		return allow(action, res.Kind)

	default:
		return deny(action, res.Kind, ReasonForbidden, fmt.Sprintf("unknown action %q", action))
	}
}

// CheckAssignee evaluates whether a task in the resolved team may be assigned
// to assigneeID. The actor's own role does not matter here.
func CheckAssignee(res Resolution, assigneeID string) Decision {
	if res.Team == nil {
		return deny(ActionAssignTask, res.Kind, ReasonNotFound, "")
	}
	if !RoleInTeam(res.Team, assigneeID).IsMember() {
		return deny(ActionAssignTask, res.Kind, ReasonInvalidAssignment, "")
	}
	return allow(ActionAssignTask, res.Kind)
}
