package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository"
)

// vanishedUsers behaves like an account store where some users were deleted
// after they created or were assigned work.
type vanishedUsers struct {
	repository.UserRepository
	gone map[string]bool
}

func (v vanishedUsers) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	users, err := v.UserRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	kept := users[:0]
	for _, u := range users {
		if !v.gone[u.UserID] {
			kept = append(kept, u)
		}
	}
	return kept, nil
}

func TestTaskService_DisplayFields(t *testing.T) {
	f := newFixture(t)
	b := f.board(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, b.bob.UserID, domain.NewTask{Title: "Fix bug", ProjectID: b.project.ProjectID})
	require.NoError(t, err)
	require.NotNil(t, task.Creator)
	assert.Equal(t, b.bob.Name, task.Creator.Name)
	assert.Nil(t, task.Assignee)

	task, err = f.tasks.UpdateTask(ctx, b.alice.UserID, task.TaskID, domain.TaskPatch{AssignedTo: domain.Some(b.bob.UserID)})
	require.NoError(t, err)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, b.bob.Email, task.Assignee.Email)

	raw, err := json.Marshal(task)
	require.NoError(t, err)
	var shape map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &shape))
	assert.Equal(t, b.bob.Name, shape["assignee"].(map[string]interface{})["name"])
	assert.Equal(t, b.bob.Email, shape["creator"].(map[string]interface{})["email"])

	tasks, err := f.tasks.ListProjectTasks(ctx, b.alice.UserID, b.project.ProjectID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Assignee)
	assert.Equal(t, b.bob.UserID, tasks[0].Assignee.UserID)

	// Unassigning drops the summary as well
	task, err = f.tasks.UpdateTask(ctx, b.bob.UserID, task.TaskID, domain.TaskPatch{AssignedTo: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, task.Assignee)
}

func TestTaskService_DisplayFieldsToleratesVanishedUser(t *testing.T) {
	f := newFixture(t)
	b := f.board(t)
	ctx := context.Background()

	created, err := f.tasks.CreateTask(ctx, b.alice.UserID, domain.NewTask{
		Title: "Fix bug", ProjectID: b.project.ProjectID, AssignedTo: b.bob.UserID,
	})
	require.NoError(t, err)

	guard := access.NewGuard(access.NewResolver(f.store.Teams(), f.store.Projects(), f.store.Tasks()), nil)
	users := vanishedUsers{UserRepository: f.store.Users(), gone: map[string]bool{b.bob.UserID: true}}
	tasks := NewTaskService(f.store.Tasks(), users, guard)

	task, err := tasks.GetTask(ctx, b.alice.UserID, created.TaskID)
	require.NoError(t, err)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, b.bob.UserID, *task.AssignedTo)
	assert.Nil(t, task.Assignee)
	require.NotNil(t, task.Creator)
	assert.Equal(t, b.alice.UserID, task.Creator.UserID)
}

func TestProjectService_DisplayFields(t *testing.T) {
	f := newFixture(t)
	b := f.board(t)
	ctx := context.Background()

	assert.Equal(t, "Eng", b.project.TeamName)
	require.NotNil(t, b.project.Creator)
	assert.Equal(t, b.alice.Name, b.project.Creator.Name)

	project, err := f.projects.GetProject(ctx, b.bob.UserID, b.project.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Eng", project.TeamName)

	project, err = f.projects.UpdateProject(ctx, b.bob.UserID, b.project.ProjectID, domain.ProjectPatch{Title: domain.Some("Website")})
	require.NoError(t, err)
	assert.Equal(t, "Eng", project.TeamName)

	projects, err := f.projects.ListProjects(ctx, b.bob.UserID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Eng", projects[0].TeamName)

	projects, err = f.projects.ListTeamProjects(ctx, b.alice.UserID, b.team.TeamID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Eng", projects[0].TeamName)

	raw, err := json.Marshal(project)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"team_name":"Eng"`)
}

func TestProjectService_DisplayFieldsToleratesVanishedCreator(t *testing.T) {
	f := newFixture(t)
	b := f.board(t)
	ctx := context.Background()

	guard := access.NewGuard(access.NewResolver(f.store.Teams(), f.store.Projects(), f.store.Tasks()), nil)
	users := vanishedUsers{UserRepository: f.store.Users(), gone: map[string]bool{b.alice.UserID: true}}
	projects := NewProjectService(f.store.Projects(), f.store.Teams(), users, guard)

	project, err := projects.GetProject(ctx, b.bob.UserID, b.project.ProjectID)
	require.NoError(t, err)
	assert.Nil(t, project.Creator)
	assert.Equal(t, "Eng", project.TeamName)
}

func TestStoreDoesNotPersistDisplayFields(t *testing.T) {
	f := newFixture(t)
	b := f.board(t)
	ctx := context.Background()

	stored, err := f.store.Projects().GetByID(ctx, b.project.ProjectID)
	require.NoError(t, err)
	assert.Empty(t, stored.TeamName)
	assert.Nil(t, stored.Creator)
}
