package domain

import "time"

// UserRole информационная роль пользователя (не используется для авторизации между командами)
type UserRole string

// Возможные роли пользователя
const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

// User представляет зарегистрированного пользователя
type User struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamMember представляет пользователя в составе команды (используется в Team.Members)
type TeamMember struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// Summary возвращает публичное представление пользователя для списков участников
func (u *User) Summary() TeamMember {
	return TeamMember{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}
