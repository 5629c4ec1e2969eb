package handler

import (
	"errors"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Credential Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrMissingIdentity):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotEventCreator):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")

	// ===== Duplicate Identity → 400 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, database.ErrDuplicate):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})

	// ===== Store Errors → 503 =====
	// The store being down is not the caller's fault and is never retried
	// silently; surface it as unavailability.
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		return model.NewStoreUnavailableError()

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
