package memory

import (
	"context"
	"time"

	"github.com/aidar/taskhive/internal/domain"
)

// TeamRepository реализует repository.TeamRepository в памяти
type TeamRepository struct {
	s *Store
}

// Create создает новую команду
func (r *TeamRepository) Create(_ context.Context, team *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[team.CreatedBy]; !ok {
		return domain.ErrUserNotFound
	}

	team.CreatedAt = r.s.tick()
	stored := copyTeam(team)
	stored.MemberIDs = dedupe(stored.MemberIDs)
	r.s.teams[team.TeamID] = stored
	return nil
}

// GetByID получает команду по ID
func (r *TeamRepository) GetByID(_ context.Context, teamID string) (*domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	team, ok := r.s.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return copyTeam(team), nil
}

// ListByUser возвращает команды, где пользователь создатель или участник
func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]*domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teams := []*domain.Team{}
	for _, team := range r.s.teams {
		if team.IsEffectiveMember(userID) {
			teams = append(teams, copyTeam(team))
		}
	}
	sortNewestFirst(teams, func(t *domain.Team) time.Time { return t.CreatedAt })
	return teams, nil
}

// AddMember добавляет участника в команду
func (r *TeamRepository) AddMember(_ context.Context, teamID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	team, ok := r.s.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	if team.HasMember(userID) {
		return domain.ErrAlreadyMember
	}

	team.MemberIDs = append(team.MemberIDs, userID)
	return nil
}

// RemoveMember исключает участника из команды
func (r *TeamRepository) RemoveMember(_ context.Context, teamID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	team, ok := r.s.teams[teamID]
	if !ok {
		return nil
	}

	kept := team.MemberIDs[:0:0]
	for _, id := range team.MemberIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	team.MemberIDs = kept
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
