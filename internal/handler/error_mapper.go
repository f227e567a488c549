package handler

import (
	"errors"

	"github.com/forgo/guild/api/internal/composition"
	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Admin and composition endpoints report errors this way.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrAdminDisabled):
		return model.NewNotFoundError("admin login")
	case errors.Is(err, composition.ErrNotFound):
		return model.NewNotFoundError("composition")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, composition.ErrFrameOutOfRange):
		return model.NewValidationError([]model.FieldError{{Field: "frame", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}

// MapSiteError converts a service error to the public site error shape.
// Anything unexpected becomes the generic 500 message.
func MapSiteError(err error) *model.SiteError {
	if err == nil {
		return nil
	}

	var se *model.SiteError
	if errors.As(err, &se) {
		return se
	}

	switch {
	case errors.Is(err, service.ErrMissingToken):
		return model.NewSiteBadRequest(model.MsgMissingToken)
	case errors.Is(err, service.ErrInvalidTokenFormat):
		return model.NewSiteBadRequest(model.MsgInvalidTokenFormat)
	default:
		return model.NewSiteInternalError()
	}
}
