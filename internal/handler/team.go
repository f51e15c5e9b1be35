package handler

import (
	"net/http"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/service"
)

// TeamHandler handles team endpoints, member management included
type TeamHandler struct {
	registry *service.Registry
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(registry *service.Registry) *TeamHandler {
	return &TeamHandler{registry: registry}
}

// CreateTeam handles POST /v1/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTeamRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	team, err := h.registry.CreateTeam(req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, team, map[string]string{
		"self": "/v1/teams/" + team.ID.String(),
	})
}

// ListTeams handles GET /v1/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.registry.ListTeams()
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, teams, len(teams), map[string]string{
		"self": "/v1/teams",
	})
}

// GetTeam handles GET /v1/teams/{teamId}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}

	team, err := h.registry.GetTeam(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, team, map[string]string{
		"self": "/v1/teams/" + team.ID.String(),
	})
}

// UpdateTeam handles PATCH /v1/teams/{teamId}
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}

	var req model.UpdateTeamRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	team, err := h.registry.UpdateTeam(id, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, team, map[string]string{
		"self": "/v1/teams/" + team.ID.String(),
	})
}

// DeleteTeam handles DELETE /v1/teams/{teamId}
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}

	if err := h.registry.RemoveTeam(id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// AddMember handles POST /v1/teams/{teamId}/members
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}

	var req model.AddMemberRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.UserID == 0 {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "user_id", Message: "user_id is required"},
		}))
		return
	}

	team, err := h.registry.AddTeamMember(teamID, model.UserID(req.UserID))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, team, map[string]string{
		"self": "/v1/teams/" + teamID.String(),
	})
}

// RemoveMember handles DELETE /v1/teams/{teamId}/members/{userId}
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}
	userID, err := model.ParseUserID(r.PathValue("userId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid user ID"))
		return
	}

	if err := h.registry.RemoveTeamMember(teamID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// ListTeamTasks handles GET /v1/teams/{teamId}/tasks
func (h *TeamHandler) ListTeamTasks(w http.ResponseWriter, r *http.Request) {
	teamID, err := model.ParseTeamID(r.PathValue("teamId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid team ID"))
		return
	}

	tasks, err := h.registry.ListTasksForTeam(teamID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, tasks, len(tasks), map[string]string{
		"self": "/v1/teams/" + teamID.String() + "/tasks",
	})
}
