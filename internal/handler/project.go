package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/service"
	"github.com/aidar/taskhive/internal/validation"
)

// ProjectHandler обрабатывает эндпоинты проектов
type ProjectHandler struct {
	projectService *service.ProjectService
	statsService   *service.StatsService
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler(projectService *service.ProjectService, statsService *service.StatsService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		statsService:   statsService,
	}
}

// CreateProjectRequest представляет тело запроса на создание проекта
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	TeamID      string `json:"team_id" validate:"required,uuid"`
}

// UpdateProjectRequest представляет частичное обновление проекта.
// Отсутствующее поле не меняется, null очищает описание.
type UpdateProjectRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
}

// ProjectResponse представляет ответ с проектом
type ProjectResponse struct {
	Project *domain.Project `json:"project"`
}

func (req UpdateProjectRequest) patch() (domain.ProjectPatch, error) {
	if req.Title.Cleared() {
		return domain.ProjectPatch{}, validation.Field("title", "cannot be null")
	}
	if req.Title.Present() {
		req.Title.Value = trim(req.Title.Value)
		if err := validation.Var("title", req.Title.Value, "min=2,max=200"); err != nil {
			return domain.ProjectPatch{}, err
		}
	}
	if req.Description.Present() {
		if err := validation.Var("description", req.Description.Value, "max=2000"); err != nil {
			return domain.ProjectPatch{}, err
		}
	}

	return domain.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

// ListProjects обрабатывает GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context(), actorFrom(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, projects)
}

// CreateProject обрабатывает POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := validation.Var("title", trim(req.Title), "min=2"); err != nil {
		HandleError(w, r, err)
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), actorFrom(r), domain.NewProject{
		Title:       req.Title,
		Description: req.Description,
		TeamID:      req.TeamID,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, ProjectResponse{Project: project})
}

// GetProject обрабатывает GET /api/projects/{projectId}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), actorFrom(r), chi.URLParam(r, "projectId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ProjectResponse{Project: project})
}

// UpdateProject обрабатывает PUT /api/projects/{projectId}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch, err := req.patch()
	if err != nil {
		HandleError(w, r, err)
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), actorFrom(r), chi.URLParam(r, "projectId"), patch)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ProjectResponse{Project: project})
}

// DeleteProject обрабатывает DELETE /api/projects/{projectId}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteProject(r.Context(), actorFrom(r), chi.URLParam(r, "projectId")); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondNoContent(w, r)
}

// ListMembers обрабатывает GET /api/projects/{projectId}/members
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.projectService.ListMembers(r.Context(), actorFrom(r), chi.URLParam(r, "projectId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, members)
}

// GetStats обрабатывает GET /api/projects/{projectId}/stats
func (h *ProjectHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetBoardStats(r.Context(), actorFrom(r), chi.URLParam(r, "projectId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}
