package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/service"
)

// AdminHandler handles the dashboard API
type AdminHandler struct {
	adminService    *service.AdminService
	waitlistService *service.WaitlistService
}

// AdminHandlerConfig holds dependencies for the admin handler
type AdminHandlerConfig struct {
	AdminService    *service.AdminService
	WaitlistService *service.WaitlistService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	return &AdminHandler{
		adminService:    cfg.AdminService,
		waitlistService: cfg.WaitlistService,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	token, err := h.adminService.Login(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "admin login"))
		return
	}

	WriteData(w, http.StatusOK, token, nil)
}

// ListSignups handles GET /api/admin/signups?role=&limit=&offset=
func (h *AdminHandler) ListSignups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SignupFilter{Role: model.SignupRole(q.Get("role"))}

	var fieldErrs []model.FieldError
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "limit", Message: "limit must be a number"})
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "offset", Message: "offset must be a number"})
		}
		filter.Offset = n
	}
	if len(fieldErrs) > 0 {
		WriteError(w, model.NewValidationError(fieldErrs))
		return
	}

	page, err := h.waitlistService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list signups"))
		return
	}

	WriteCollection(w, http.StatusOK, page.Signups, &PaginationInfo{
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}, map[string]string{
		"self":   "/api/admin/signups",
		"export": "/api/admin/signups/export",
	})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.waitlistService.Stats(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "waitlist stats"))
		return
	}
	WriteData(w, http.StatusOK, stats, map[string]string{"self": "/api/admin/stats"})
}

// ExportCSV handles GET /api/admin/signups/export. The export is
// buffered so a store failure midway still produces a clean error.
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.waitlistService.ExportCSV(r.Context(), &buf); err != nil {
		slog.ErrorContext(r.Context(), "signup export failed", slog.String("error", err.Error()))
		WriteError(w, MapServiceErrorWithContext(err, "export signups"))
		return
	}

	filename := fmt.Sprintf("guild-waitlist-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
