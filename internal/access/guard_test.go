package access

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/metrics"
)

func decisions(action Action, outcome string) float64 {
	return testutil.ToFloat64(metrics.AccessDecisions.WithLabelValues(string(action), outcome))
}

func TestGuard_RecordsDecisions(t *testing.T) {
	_, r := chain(t)
	g := NewGuard(r, nil)
	ctx := context.Background()

	allowedBefore := decisions(ActionReadTask, "allow")
	deniedBefore := decisions(ActionReadTask, string(ReasonForbidden))

	res, err := g.Task(ctx, "bob", "bug", ActionReadTask)
	require.NoError(t, err)
	assert.Equal(t, "bug", res.Task.TaskID)

	_, err = g.Task(ctx, "carol", "bug", ActionReadTask)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, allowedBefore+1, decisions(ActionReadTask, "allow"))
	assert.Equal(t, deniedBefore+1, decisions(ActionReadTask, string(ReasonForbidden)))
}

func TestGuard_NotFound(t *testing.T) {
	_, r := chain(t)
	g := NewGuard(r, nil)

	_, err := g.Project(context.Background(), "alice", "missing", ActionReadProject)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestGuard_Assignee(t *testing.T) {
	_, r := chain(t)
	g := NewGuard(r, nil)
	ctx := context.Background()

	res, err := g.Project(ctx, "alice", "site", ActionCreateTask)
	require.NoError(t, err)

	assert.NoError(t, g.Assignee(ctx, res, "bob"))
	assert.ErrorIs(t, g.Assignee(ctx, res, "carol"), domain.ErrInvalidAssignment)
}

func TestPrepareInvite(t *testing.T) {
	team := &domain.Team{CreatedBy: "alice", MemberIDs: []string{"bob"}}

	require.NoError(t, PrepareInvite(team, "carol"))
	assert.Equal(t, []string{"bob", "carol"}, team.MemberIDs)

	assert.ErrorIs(t, PrepareInvite(team, "carol"), domain.ErrAlreadyMember)
	assert.ErrorIs(t, PrepareInvite(team, "alice"), domain.ErrAlreadyMember, "creator is implicitly a member")
	assert.Equal(t, []string{"bob", "carol"}, team.MemberIDs)
}

func TestPrepareRemoval(t *testing.T) {
	team := &domain.Team{CreatedBy: "alice", MemberIDs: []string{"alice", "bob", "carol"}}

	assert.ErrorIs(t, PrepareRemoval(team, "alice"), domain.ErrCannotRemoveCreator)
	assert.Equal(t, []string{"alice", "bob", "carol"}, team.MemberIDs)

	require.NoError(t, PrepareRemoval(team, "bob"))
	assert.Equal(t, []string{"alice", "carol"}, team.MemberIDs)

	require.NoError(t, PrepareRemoval(team, "nobody"))
	assert.Equal(t, []string{"alice", "carol"}, team.MemberIDs)
}

func TestApplyTaskPatch_OnlyPresentFields(t *testing.T) {
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	assignee := "bob"
	base := func() *domain.Task {
		return &domain.Task{
			Title:       "Fix bug",
			Description: "details",
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityHigh,
			AssignedTo:  &assignee,
			DueDate:     &due,
		}
	}

	task := base()
	ApplyTaskPatch(task, domain.TaskPatch{Status: domain.Some(domain.TaskStatusDone)})
	assert.Equal(t, domain.TaskStatusDone, task.Status)
	assert.Equal(t, "Fix bug", task.Title)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "bob", *task.AssignedTo)
	assert.Equal(t, "details", task.Description)
	assert.Equal(t, &due, task.DueDate)

	task = base()
	ApplyTaskPatch(task, domain.TaskPatch{AssignedTo: domain.Null[string]()})
	assert.Nil(t, task.AssignedTo)

	task = base()
	ApplyTaskPatch(task, domain.TaskPatch{AssignedTo: domain.Some("")})
	assert.Nil(t, task.AssignedTo, "empty assignee clears like null")

	task = base()
	ApplyTaskPatch(task, domain.TaskPatch{
		AssignedTo:  domain.Some("carol"),
		Description: domain.Null[string](),
		DueDate:     domain.Null[time.Time](),
		Title:       domain.Some("Fix crash"),
	})
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "carol", *task.AssignedTo)
	assert.Empty(t, task.Description)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "Fix crash", task.Title)
}

func TestApplyProjectPatch(t *testing.T) {
	project := &domain.Project{Title: "Site", Description: "marketing"}

	ApplyProjectPatch(project, domain.ProjectPatch{Title: domain.Some("Website")})
	assert.Equal(t, "Website", project.Title)
	assert.Equal(t, "marketing", project.Description)

	ApplyProjectPatch(project, domain.ProjectPatch{Description: domain.Null[string]()})
	assert.Empty(t, project.Description)
	assert.Equal(t, "Website", project.Title)
}
