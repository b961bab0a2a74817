package handler

import (
	"errors"

	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Upstream Auth Errors → 400 =====
	case errors.Is(err, service.ErrMissingAuthCode):
		return model.NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrUpstreamAuth):
		return model.NewBadRequestError("identity provider rejected the authorization code")

	// ===== Session Errors → 401 =====
	case errors.Is(err, service.ErrInvalidSession):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrGuildNotAllowed):
		denied := model.NewForbiddenError(err.Error())
		denied.Code = model.ErrCodeGuildDenied
		return denied
	case errors.Is(err, service.ErrCannotCreateEvents),
		errors.Is(err, service.ErrRoleRequired),
		errors.Is(err, service.ErrNotRequestParticipant):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrCraftRequestNotFound):
		return model.NewNotFoundError("craft request")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrRequestAlreadyClaimed),
		errors.Is(err, service.ErrRequestClosed):
		return model.NewConflictError(err.Error())

	// Completing a request that was never accepted is a sequencing
	// mistake by the caller, not a state conflict
	case errors.Is(err, service.ErrRequestNotAccepted):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrItemNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "item_name", Message: err.Error()}})
	case errors.Is(err, service.ErrQuantityInvalid):
		return model.NewValidationError([]model.FieldError{{Field: "quantity", Message: err.Error()}})
	case errors.Is(err, service.ErrLocationRequired):
		return model.NewValidationError([]model.FieldError{{Field: "location", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails
// response with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
