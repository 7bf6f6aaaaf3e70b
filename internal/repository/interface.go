package repository

import (
	"context"

	"github.com/aidar/taskhive/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя (ErrEmailTaken если email занят)
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIDs возвращает найденных пользователей в порядке переданных ID, пропуская отсутствующих
	GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create создает новую команду; создатель записывается первым участником
	Create(ctx context.Context, team *domain.Team) error

	// GetByID получает команду со списком ID участников
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ListByUser возвращает команды, где пользователь создатель или участник
	ListByUser(ctx context.Context, userID string) ([]*domain.Team, error)

	// AddMember добавляет участника (ErrAlreadyMember если он уже есть)
	AddMember(ctx context.Context, teamID, userID string) error

	// RemoveMember исключает участника; отсутствие участника не является ошибкой
	RemoveMember(ctx context.Context, teamID, userID string) error
}

// ProjectRepository определяет методы для работы с данными проектов
type ProjectRepository interface {
	// Create создает новый проект
	Create(ctx context.Context, project *domain.Project) error

	// GetByID получает проект по ID
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListByTeams возвращает проекты перечисленных команд, новые первыми
	ListByTeams(ctx context.Context, teamIDs []string) ([]*domain.Project, error)

	// Update сохраняет изменяемые поля проекта (last-write-wins)
	Update(ctx context.Context, project *domain.Project) error

	// Delete удаляет проект
	Delete(ctx context.Context, projectID string) error
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create создает новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу по ID
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListByProject возвращает задачи проекта, новые первыми
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)

	// Update сохраняет изменяемые поля задачи (last-write-wins)
	Update(ctx context.Context, task *domain.Task) error

	// Delete удаляет задачу
	Delete(ctx context.Context, taskID string) error
}
