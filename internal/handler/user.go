package handler

import (
	"net/http"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/service"
)

// UserHandler handles user endpoints
type UserHandler struct {
	registry *service.Registry
}

// NewUserHandler creates a new user handler
func NewUserHandler(registry *service.Registry) *UserHandler {
	return &UserHandler{registry: registry}
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.registry.CreateUser(req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, user, map[string]string{
		"self": "/v1/users/" + user.ID.String(),
	})
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.registry.ListUsers()
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, users, len(users), map[string]string{
		"self": "/v1/users",
	})
}

// GetUser handles GET /v1/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseUserID(r.PathValue("userId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid user ID"))
		return
	}

	user, err := h.registry.GetUser(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/v1/users/" + user.ID.String(),
	})
}

// UpdateUser handles PATCH /v1/users/{userId}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseUserID(r.PathValue("userId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.registry.UpdateUser(id, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/v1/users/" + user.ID.String(),
	})
}

// DeleteUser handles DELETE /v1/users/{userId}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseUserID(r.PathValue("userId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid user ID"))
		return
	}

	if err := h.registry.RemoveUser(id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
