package domain

import "time"

// Team представляет команду: создателя и множество участников
type Team struct {
	TeamID    string       `json:"team_id"`
	TeamName  string       `json:"team_name"`
	CreatedBy string       `json:"created_by"`
	MemberIDs []string     `json:"member_ids"`
	Members   []TeamMember `json:"members,omitempty"` // Заполняется сервисом для ответов API
	CreatedAt time.Time    `json:"created_at"`
}

// IsCreator проверяет, является ли пользователь создателем команды
func (t *Team) IsCreator(userID string) bool {
	return userID != "" && t.CreatedBy == userID
}

// HasMember проверяет наличие пользователя в явном списке участников
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsEffectiveMember возвращает true для создателя и для любого участника команды.
// Создатель всегда считается участником, даже если его нет в MemberIDs.
func (t *Team) IsEffectiveMember(userID string) bool {
	return t.IsCreator(userID) || (userID != "" && t.HasMember(userID))
}

// EffectiveMemberIDs возвращает создателя и участников без повторов, создатель первым
func (t *Team) EffectiveMemberIDs() []string {
	ids := make([]string, 0, len(t.MemberIDs)+1)
	ids = append(ids, t.CreatedBy)
	for _, id := range t.MemberIDs {
		if id != t.CreatedBy {
			ids = append(ids, id)
		}
	}
	return ids
}
