package handler

import (
	"log/slog"
	"net/http"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/service"
)

// WaitlistHandler handles the public waitlist endpoints
type WaitlistHandler struct {
	waitlistService *service.WaitlistService
}

// NewWaitlistHandler creates a new waitlist handler
func NewWaitlistHandler(waitlistService *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlistService,
	}
}

// Join handles POST /api/waitlist
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req model.JoinWaitlistRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteSiteError(w, model.NewSiteBadRequest(model.MsgInvalidRequest))
		return
	}

	if err := h.waitlistService.Join(r.Context(), &req); err != nil {
		h.writeSiteError(r, w, err, "join waitlist")
		return
	}

	WriteSuccess(w)
}

// Unsubscribe handles POST /api/unsubscribe. Unknown and already-used
// tokens get the same 200 as a real unsubscribe.
func (h *WaitlistHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req model.UnsubscribeRequest
	if err := DecodeJSONLoose(w, r, &req); err != nil {
		slog.ErrorContext(r.Context(), "unsubscribe body unreadable", slog.String("error", err.Error()))
		WriteSiteError(w, model.NewSiteInternalError())
		return
	}

	token, ok := req.Token.(string)
	if !ok || token == "" {
		WriteSiteError(w, model.NewSiteBadRequest(model.MsgMissingToken))
		return
	}

	if err := h.waitlistService.Unsubscribe(r.Context(), token); err != nil {
		h.writeSiteError(r, w, err, "unsubscribe")
		return
	}

	WriteSuccess(w)
}

// Spots handles GET /api/waitlist/spots
func (h *WaitlistHandler) Spots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.waitlistService.Spots(r.Context())
	if err != nil {
		h.writeSiteError(r, w, err, "count spots")
		return
	}
	WriteJSON(w, http.StatusOK, spots)
}

func (h *WaitlistHandler) writeSiteError(r *http.Request, w http.ResponseWriter, err error, operation string) {
	se := MapSiteError(err)
	if se.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), operation+" failed", slog.String("error", err.Error()))
	}
	WriteSiteError(w, se)
}
