package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository/memory"
)

type fixture struct {
	store    *memory.Store
	auth     *AuthService
	teams    *TeamService
	projects *ProjectService
	tasks    *TaskService
	stats    *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	guard := access.NewGuard(access.NewResolver(store.Teams(), store.Projects(), store.Tasks()), nil)

	return &fixture{
		store:    store,
		auth:     NewAuthService(store.Users(), "test-secret", time.Hour, 4),
		teams:    NewTeamService(store.Teams(), store.Users(), guard),
		projects: NewProjectService(store.Projects(), store.Teams(), store.Users(), guard),
		tasks:    NewTaskService(store.Tasks(), store.Users(), guard),
		stats:    NewStatsService(store.Tasks(), guard),
	}
}

func (f *fixture) register(t *testing.T, name string) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), name, name+"@example.com", "password123")
	require.NoError(t, err)
	return user
}

// board registers alice, bob and carol; alice creates team Eng with bob
// invited and project Site. carol stays outside.
type board struct {
	alice, bob, carol *domain.User
	team              *domain.Team
	project           *domain.Project
}

func (f *fixture) board(t *testing.T) board {
	t.Helper()
	ctx := context.Background()

	b := board{
		alice: f.register(t, "alice"),
		bob:   f.register(t, "bob"),
		carol: f.register(t, "carol"),
	}

	team, err := f.teams.CreateTeam(ctx, b.alice.UserID, "Eng")
	require.NoError(t, err)
	team, err = f.teams.InviteMember(ctx, b.alice.UserID, team.TeamID, b.bob.Email)
	require.NoError(t, err)
	b.team = team

	b.project, err = f.projects.CreateProject(ctx, b.alice.UserID, domain.NewProject{Title: "Site", TeamID: team.TeamID})
	require.NoError(t, err)

	return b
}
