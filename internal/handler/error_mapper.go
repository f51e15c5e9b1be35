package handler

import (
	"errors"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Validation failures already carry their HTTP shape.
	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrTagNotFound):
		return model.NewNotFoundError("tag")
	case errors.Is(err, service.ErrTeamNotFound):
		return model.NewNotFoundError("team")
	case errors.Is(err, service.ErrTaskNotFound):
		return model.NewNotFoundError("task")
	case errors.Is(err, service.ErrMemberNotFound):
		return model.NewNotFoundError("team member")
	case errors.Is(err, service.ErrTagNotAttached):
		return model.NewNotFoundError("attached tag")

	// ===== Reference Errors → 422 =====
	case errors.Is(err, service.ErrOwnerNotRegistered):
		return model.NewValidationError([]model.FieldError{{Field: "owner_id", Message: err.Error()}})
	case errors.Is(err, service.ErrTeamNotRegistered):
		return model.NewValidationError([]model.FieldError{{Field: "team_id", Message: err.Error()}})

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrDuplicateID),
		errors.Is(err, service.ErrMemberExists),
		errors.Is(err, service.ErrTagAlreadyAttached):
		return model.NewConflictError(err.Error())

	// ===== Bad Request → 400 =====
	case errors.Is(err, service.ErrNilEntity):
		return model.NewBadRequestError(err.Error())

	// ===== Lifecycle / Default → 500 =====
	case errors.Is(err, service.ErrNotInitialized):
		return model.NewInternalError(err.Error())
	default:
		return model.NewInternalError("")
	}
}
