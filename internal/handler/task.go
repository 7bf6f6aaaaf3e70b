package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/service"
	"github.com/aidar/taskhive/internal/validation"
)

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest представляет тело запроса на создание задачи
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Status      string `json:"status" validate:"omitempty,oneof=todo inprogress done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo  string `json:"assigned_to"`
	ProjectID   string `json:"project_id" validate:"required,uuid"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest представляет частичное обновление задачи.
// Отсутствующее поле не меняется; null или пустая строка очищают
// description, assigned_to и due_date. title, status и priority очистить нельзя.
type UpdateTaskRequest struct {
	Title       domain.Optional[string]              `json:"title"`
	Description domain.Optional[string]              `json:"description"`
	Status      domain.Optional[domain.TaskStatus]   `json:"status"`
	Priority    domain.Optional[domain.TaskPriority] `json:"priority"`
	AssignedTo  domain.Optional[string]              `json:"assigned_to"`
	DueDate     domain.Optional[string]              `json:"due_date"`
}

// TaskResponse представляет ответ с задачей
type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

func (req CreateTaskRequest) input() (domain.NewTask, error) {
	if err := validation.Var("title", trim(req.Title), "min=2"); err != nil {
		return domain.NewTask{}, err
	}

	input := domain.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssignedTo:  trim(req.AssignedTo),
		ProjectID:   req.ProjectID,
	}

	if trim(req.DueDate) != "" {
		due, err := validation.ParseDueDate(req.DueDate)
		if err != nil {
			return domain.NewTask{}, err
		}
		input.DueDate = &due
	}

	return input, nil
}

func (req UpdateTaskRequest) patch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	switch {
	case req.Title.Cleared():
		return patch, validation.Field("title", "cannot be null")
	case req.Title.Present():
		title := trim(req.Title.Value)
		if err := validation.Var("title", title, "min=2,max=200"); err != nil {
			return patch, err
		}
		patch.Title = domain.Some(title)
	}

	switch {
	case req.Status.Cleared():
		return patch, validation.Field("status", "cannot be null")
	case req.Status.Present() && !req.Status.Value.IsValid():
		return patch, validation.Field("status", "must be one of: todo inprogress done")
	}
	patch.Status = req.Status

	switch {
	case req.Priority.Cleared():
		return patch, validation.Field("priority", "cannot be null")
	case req.Priority.Present() && !req.Priority.Value.IsValid():
		return patch, validation.Field("priority", "must be one of: low medium high")
	}
	patch.Priority = req.Priority

	if req.Description.Present() {
		if err := validation.Var("description", req.Description.Value, "max=5000"); err != nil {
			return patch, err
		}
	}
	patch.Description = req.Description

	patch.AssignedTo = req.AssignedTo
	if req.AssignedTo.Present() {
		patch.AssignedTo = domain.Some(trim(req.AssignedTo.Value))
	}

	if req.DueDate.Set {
		if !req.DueDate.Present() || trim(req.DueDate.Value) == "" {
			patch.DueDate = domain.Null[time.Time]()
		} else {
			due, err := validation.ParseDueDate(req.DueDate.Value)
			if err != nil {
				return patch, err
			}
			patch.DueDate = domain.Some(due)
		}
	}

	return patch, nil
}

// ListProjectTasks обрабатывает GET /api/tasks/project/{projectId}
func (h *TaskHandler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListProjectTasks(r.Context(), actorFrom(r), chi.URLParam(r, "projectId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask обрабатывает POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	input, err := req.input()
	if err != nil {
		HandleError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), actorFrom(r), input)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, TaskResponse{Task: task})
}

// GetTask обрабатывает GET /api/tasks/{taskId}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTask(r.Context(), actorFrom(r), chi.URLParam(r, "taskId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: task})
}

// UpdateTask обрабатывает PUT /api/tasks/{taskId}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch, err := req.patch()
	if err != nil {
		HandleError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), actorFrom(r), chi.URLParam(r, "taskId"), patch)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: task})
}

// DeleteTask обрабатывает DELETE /api/tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.DeleteTask(r.Context(), actorFrom(r), chi.URLParam(r, "taskId")); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondNoContent(w, r)
}
