package handler

import (
	"net/http"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/service"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	registry *service.Registry
}

// NewTagHandler creates a new tag handler
func NewTagHandler(registry *service.Registry) *TagHandler {
	return &TagHandler{registry: registry}
}

// CreateTag handles POST /v1/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTagRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	tag, err := h.registry.CreateTag(req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, tag, map[string]string{
		"self": "/v1/tags/" + tag.ID.String(),
	})
}

// ListTags handles GET /v1/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.registry.ListTags()
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, tags, len(tags), map[string]string{
		"self": "/v1/tags",
	})
}

// GetTag handles GET /v1/tags/{tagId}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTagID(r.PathValue("tagId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid tag ID"))
		return
	}

	tag, err := h.registry.GetTag(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tag, map[string]string{
		"self": "/v1/tags/" + tag.ID.String(),
	})
}

// UpdateTag handles PATCH /v1/tags/{tagId}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTagID(r.PathValue("tagId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid tag ID"))
		return
	}

	var req model.UpdateTagRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	tag, err := h.registry.UpdateTag(id, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tag, map[string]string{
		"self": "/v1/tags/" + tag.ID.String(),
	})
}

// DeleteTag handles DELETE /v1/tags/{tagId}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTagID(r.PathValue("tagId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid tag ID"))
		return
	}

	if err := h.registry.RemoveTag(id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
