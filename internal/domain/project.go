package domain

import "time"

// Project представляет проект, принадлежащий ровно одной команде
type Project struct {
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TeamID      string    `json:"team_id"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Данные для отображения, не хранятся
	TeamName string      `json:"team_name,omitempty"`
	Creator  *TeamMember `json:"creator,omitempty"`
}

// NewProject содержит данные для создания проекта
type NewProject struct {
	Title       string
	Description string
	TeamID      string
}

// ProjectPatch описывает частичное обновление проекта
type ProjectPatch struct {
	Title       Optional[string]
	Description Optional[string]
}
