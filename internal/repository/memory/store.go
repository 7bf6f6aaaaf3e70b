// Package memory implements the repository interfaces on top of in-process maps.
// It backs the STORAGE_DRIVER=memory mode and the service and handler tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository"
)

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.TeamRepository    = (*TeamRepository)(nil)
	_ repository.ProjectRepository = (*ProjectRepository)(nil)
	_ repository.TaskRepository    = (*TaskRepository)(nil)
)

// Store holds every entity kind behind one lock so a single write is atomic
// per entity, matching per-row atomicity of the PostgreSQL store.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    map[string]*domain.User
	teams    map[string]*domain.Team
	projects map[string]*domain.Project
	tasks    map[string]*domain.Task
	seq      int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]*domain.User),
		teams:    make(map[string]*domain.Team),
		projects: make(map[string]*domain.Project),
		tasks:    make(map[string]*domain.Task),
	}
}

// tick returns a strictly increasing timestamp so "newest first" ordering is
// deterministic even when two inserts land within the clock resolution.
func (s *Store) tick() time.Time {
	s.seq++
	return s.now().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Teams returns a TeamRepository view of the store.
func (s *Store) Teams() *TeamRepository { return &TeamRepository{s: s} }

// Projects returns a ProjectRepository view of the store.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// Tasks returns a TaskRepository view of the store.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyTeam(t *domain.Team) *domain.Team {
	c := *t
	c.MemberIDs = append([]string{}, t.MemberIDs...)
	c.Members = nil
	return &c
}

func copyProject(p *domain.Project) *domain.Project {
	c := *p
	c.TeamName = ""
	c.Creator = nil
	return &c
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		c.AssignedTo = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	c.Assignee = nil
	c.Creator = nil
	return &c
}

func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
