package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeLoginFailed  ErrorCode = 1004

	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4029

	// Internal errors (5xxx)
	ErrCodeInternal ErrorCode = 5001
)

const problemTypeBase = "https://joinguild.app/errors/"

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs.
// Admin and infrastructure responses use it; the public site endpoints use
// the smaller SiteError shape.
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code ErrorCode `json:"code,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Common error constructors

func NewUnauthorizedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   ErrCodeUnauthorized,
	}
}

func NewForbiddenError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "forbidden",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
		Code:   ErrCodeUnauthorized,
	}
}

func NewNotFoundError(resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
		Code:   ErrCodeNotFound,
	}
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "validation",
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeValidation,
		Errors: errors,
	}
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeInternal,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidInput,
	}
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "rate-limited",
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
		Detail: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
		Code:   ErrCodeRateLimited,
	}
}

// SiteError is the error body of the public site endpoints: {"error": "..."}
type SiteError struct {
	Status  int          `json:"-"`
	Message string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *SiteError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the site error as a JSON response
func (e *SiteError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Messages shown by the public site endpoints
const (
	MsgMissingToken       = "Missing unsubscribe token"
	MsgInvalidTokenFormat = "Invalid token format"
	MsgInvalidRequest     = "Invalid request body"
	MsgSomethingWentWrong = "Something went wrong"
	MsgTooManyRequests    = "Too many requests"
)

// NewSiteBadRequest builds a 400 site error
func NewSiteBadRequest(message string) *SiteError {
	return &SiteError{Status: http.StatusBadRequest, Message: message}
}

// NewSiteValidationError builds a 400 site error carrying field errors.
// The message is the first field error so simple clients can show it as-is.
func NewSiteValidationError(errors []FieldError) *SiteError {
	msg := MsgInvalidRequest
	if len(errors) > 0 {
		msg = errors[0].Message
	}
	return &SiteError{Status: http.StatusBadRequest, Message: msg, Errors: errors}
}

// NewSiteInternalError builds the generic 500 site error
func NewSiteInternalError() *SiteError {
	return &SiteError{Status: http.StatusInternalServerError, Message: MsgSomethingWentWrong}
}
