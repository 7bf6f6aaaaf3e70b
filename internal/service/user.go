package service

import (
	"context"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository"
)

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// memberSummaries loads display data for the given user ids, skipping deleted accounts
func memberSummaries(ctx context.Context, users repository.UserRepository, ids []string) ([]domain.TeamMember, error) {
	found, err := users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(found))
	for _, u := range found {
		members = append(members, u.Summary())
	}
	return members, nil
}

// userDirectory loads display summaries for ids in one query. Ids of deleted
// accounts are simply absent from the result.
func userDirectory(ctx context.Context, users repository.UserRepository, ids []string) (map[string]domain.TeamMember, error) {
	found, err := users.GetByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}

	directory := make(map[string]domain.TeamMember, len(found))
	for _, u := range found {
		directory[u.UserID] = u.Summary()
	}
	return directory, nil
}

// lookup returns a summary pointer or nil when the user is gone
func lookup(directory map[string]domain.TeamMember, id string) *domain.TeamMember {
	member, ok := directory[id]
	if !ok {
		return nil
	}
	return &member
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
