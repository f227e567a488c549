package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// ProblemDetails Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "signup not found",
	}

	errMsg := pd.Error()

	for _, want := range []string{"404", "Not Found", "signup not found"} {
		if !strings.Contains(errMsg, want) {
			t.Errorf("error message should contain %q, got: %s", want, errMsg)
		}
	}
}

func TestProblemDetails_WriteJSON_SetsHeadersAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewUnauthorizedError("token expired").WriteJSON(rr)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}

	var decoded ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Detail != "token expired" {
		t.Errorf("expected detail 'token expired', got %q", decoded.Detail)
	}
	if decoded.Code != ErrCodeUnauthorized {
		t.Errorf("expected code %d, got %d", ErrCodeUnauthorized, decoded.Code)
	}
}

func TestConstructors_StatusAndType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pd       *ProblemDetails
		status   int
		typeSlug string
	}{
		{"unauthorized", NewUnauthorizedError("x"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", NewForbiddenError("x"), http.StatusForbidden, "forbidden"},
		{"not found", NewNotFoundError("composition"), http.StatusNotFound, "not-found"},
		{"validation", NewValidationError(nil), http.StatusUnprocessableEntity, "validation"},
		{"internal", NewInternalError(""), http.StatusInternalServerError, "internal"},
		{"bad request", NewBadRequestError("x"), http.StatusBadRequest, "bad-request"},
		{"rate limited", NewRateLimitError(30), http.StatusTooManyRequests, "rate-limited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pd.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.pd.Status)
			}
			if tt.pd.Type != problemTypeBase+tt.typeSlug {
				t.Errorf("unexpected type %q", tt.pd.Type)
			}
		})
	}
}

func TestNewNotFoundError_FormatsResourceName(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("composition")
	if pd.Detail != "composition not found" {
		t.Errorf("expected 'composition not found', got %q", pd.Detail)
	}
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "email", Message: "email is required"},
		{Field: "role", Message: "role must be homeowner or contractor"},
	})

	if !strings.Contains(pd.Detail, "email: email is required") {
		t.Errorf("detail should lead with first field error, got %q", pd.Detail)
	}
	if !strings.Contains(pd.Detail, "and 1 more") {
		t.Errorf("detail should summarize remaining errors, got %q", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(pd.Errors))
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	if pd := NewInternalError(""); pd.Detail != "An unexpected error occurred" {
		t.Errorf("unexpected default detail %q", pd.Detail)
	}
}

func TestProblemDetails_JSON_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&ProblemDetails{Type: "t", Title: "T", Status: 400})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"detail", "instance", "errors", "code"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("expected %s to be omitted, got %s", field, data)
		}
	}
}

// ============================================================================
// SiteError Tests
// ============================================================================

func TestSiteError_JSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewSiteBadRequest(MsgInvalidTokenFormat))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"error":"Invalid token format"}` {
		t.Errorf("unexpected body %s", data)
	}
}

func TestNewSiteValidationError_UsesFirstMessage(t *testing.T) {
	t.Parallel()

	se := NewSiteValidationError([]FieldError{
		{Field: "zip_code", Message: "zip code must be 5 digits or ZIP+4"},
		{Field: "role", Message: "role must be homeowner or contractor"},
	})

	if se.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", se.Status)
	}
	if se.Message != "zip code must be 5 digits or ZIP+4" {
		t.Errorf("unexpected message %q", se.Message)
	}
	if len(se.Errors) != 2 {
		t.Errorf("expected field errors to be kept, got %d", len(se.Errors))
	}
}

func TestNewSiteInternalError_GenericMessage(t *testing.T) {
	t.Parallel()

	se := NewSiteInternalError()
	if se.Status != http.StatusInternalServerError || se.Message != "Something went wrong" {
		t.Errorf("unexpected site error %+v", se)
	}
}

func TestErrorCodes_UniqueValues(t *testing.T) {
	t.Parallel()

	codes := []ErrorCode{
		ErrCodeUnauthorized, ErrCodeTokenExpired, ErrCodeLoginFailed,
		ErrCodeNotFound, ErrCodeValidation, ErrCodeInvalidInput,
		ErrCodeRateLimited, ErrCodeInternal,
	}
	seen := make(map[ErrorCode]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %d", c)
		}
		seen[c] = true
	}
}
