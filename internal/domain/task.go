package domain

import "time"

// TaskStatus представляет колонку канбан-доски
type TaskStatus string

// Возможные статусы задачи
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses перечисляет статусы в порядке колонок доски
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// IsValid проверяет, что статус входит в допустимое множество
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority представляет приоритет задачи
type TaskPriority string

// Возможные приоритеты задачи
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskPriorities перечисляет приоритеты по возрастанию
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

// IsValid проверяет, что приоритет входит в допустимое множество
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task представляет задачу на доске проекта
type Task struct {
	TaskID      string       `json:"task_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  *string      `json:"assigned_to"`
	ProjectID   string       `json:"project_id"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Данные для отображения, не хранятся. Пусты если пользователь удален.
	Assignee *TeamMember `json:"assignee,omitempty"`
	Creator  *TeamMember `json:"creator,omitempty"`
}

// UserIDs возвращает ID создателя и исполнителя задачи
func (t *Task) UserIDs() []string {
	if t.AssignedTo == nil {
		return []string{t.CreatedBy}
	}
	return []string{t.CreatedBy, *t.AssignedTo}
}

// IsOverdue возвращает true если срок задачи прошел, а задача не завершена.
// Срок без времени (полночь UTC) действует до конца этого дня.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusDone {
		return false
	}
	return !now.Before(Deadline(*t.DueDate))
}

// Deadline возвращает момент, с которого задача со сроком due считается просроченной
func Deadline(due time.Time) time.Time {
	due = due.UTC()
	if due.Equal(due.Truncate(24 * time.Hour)) {
		return due.AddDate(0, 0, 1)
	}
	return due
}

// NewTask содержит данные для создания задачи. Пустые Status и Priority заменяются значениями по умолчанию.
type NewTask struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssignedTo  string
	ProjectID   string
	DueDate     *time.Time
}

// TaskPatch описывает частичное обновление задачи
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[TaskStatus]
	Priority    Optional[TaskPriority]
	AssignedTo  Optional[string]
	DueDate     Optional[time.Time]
}

// AssigneeChange возвращает нового исполнителя, если патч его задает (а не очищает)
func (p TaskPatch) AssigneeChange() (string, bool) {
	if !p.AssignedTo.Present() || p.AssignedTo.Value == "" {
		return "", false
	}
	return p.AssignedTo.Value, true
}
