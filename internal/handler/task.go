package handler

import (
	"net/http"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/service"
)

// TaskHandler handles task endpoints, tag attachment included
type TaskHandler struct {
	registry *service.Registry
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(registry *service.Registry) *TaskHandler {
	return &TaskHandler{registry: registry}
}

// CreateTask handles POST /v1/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.registry.CreateTask(req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, task, map[string]string{
		"self": "/v1/tasks/" + task.ID.String(),
	})
}

// ListTasks handles GET /v1/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.registry.ListTasks()
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, tasks, len(tasks), map[string]string{
		"self": "/v1/tasks",
	})
}

// GetTask handles GET /v1/tasks/{taskId}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}

	task, err := h.registry.GetTask(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, task, map[string]string{
		"self": "/v1/tasks/" + task.ID.String(),
	})
}

// UpdateTask handles PATCH /v1/tasks/{taskId}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}

	var req model.UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.registry.UpdateTask(id, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, task, map[string]string{
		"self": "/v1/tasks/" + task.ID.String(),
	})
}

// SetStatus handles PATCH /v1/tasks/{taskId}/status
func (h *TaskHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}

	var req model.SetStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.registry.SetTaskStatus(id, model.TaskStatus(req.Status))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, task, map[string]string{
		"self": "/v1/tasks/" + task.ID.String(),
	})
}

// DeleteTask handles DELETE /v1/tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}

	if err := h.registry.RemoveTask(id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// AttachTag handles POST /v1/tasks/{taskId}/tags
func (h *TaskHandler) AttachTag(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}

	var req model.AttachTagRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.TagID == 0 {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "tag_id", Message: "tag_id is required"},
		}))
		return
	}

	task, err := h.registry.AddTaskTag(id, model.TagID(req.TagID))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, task, map[string]string{
		"self": "/v1/tasks/" + id.String(),
	})
}

// DetachTag handles DELETE /v1/tasks/{taskId}/tags/{tagId}
func (h *TaskHandler) DetachTag(w http.ResponseWriter, r *http.Request) {
	taskID, err := model.ParseTaskID(r.PathValue("taskId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid task ID"))
		return
	}
	tagID, err := model.ParseTagID(r.PathValue("tagId"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid tag ID"))
		return
	}

	if err := h.registry.RemoveTaskTag(taskID, tagID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
