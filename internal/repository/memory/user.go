package memory

import (
	"context"

	"github.com/aidar/taskhive/internal/domain"
)

// UserRepository реализует repository.UserRepository в памяти
type UserRepository struct {
	s *Store
}

// Create создает нового пользователя
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	user.CreatedAt = r.s.tick()
	r.s.users[user.UserID] = copyUser(user)
	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByIDs возвращает найденных пользователей в порядке переданных ID
func (r *UserRepository) GetByIDs(_ context.Context, userIDs []string) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := r.s.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}
