package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/service"
	"github.com/aidar/taskhive/internal/validation"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService    *service.TeamService
	projectService *service.ProjectService
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService, projectService *service.ProjectService) *TeamHandler {
	return &TeamHandler{
		teamService:    teamService,
		projectService: projectService,
	}
}

// CreateTeamRequest представляет тело запроса на создание команды
type CreateTeamRequest struct {
	TeamName string `json:"team_name" validate:"required,max=100"`
}

// InviteRequest представляет тело запроса на приглашение участника
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TeamResponse представляет ответ с командой
type TeamResponse struct {
	Team *domain.Team `json:"team"`
}

// ListTeams обрабатывает GET /api/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context(), actorFrom(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// CreateTeam обрабатывает POST /api/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := validation.Var("team_name", trim(req.TeamName), "min=2"); err != nil {
		HandleError(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), actorFrom(r), req.TeamName)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, TeamResponse{Team: team})
}

// GetTeam обрабатывает GET /api/teams/{teamId}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), actorFrom(r), chi.URLParam(r, "teamId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// Invite обрабатывает POST /api/teams/{teamId}/invite
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	team, err := h.teamService.InviteMember(r.Context(), actorFrom(r), chi.URLParam(r, "teamId"), req.Email)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// RemoveMember обрабатывает DELETE /api/teams/{teamId}/members/{memberId}
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.RemoveMember(
		r.Context(),
		actorFrom(r),
		chi.URLParam(r, "teamId"),
		chi.URLParam(r, "memberId"),
	)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamResponse{Team: team})
}

// ListProjects обрабатывает GET /api/teams/{teamId}/projects
func (h *TeamHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListTeamProjects(r.Context(), actorFrom(r), chi.URLParam(r, "teamId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, projects)
}
