package handler

import (
	"net/http"
	"strconv"

	"github.com/forgo/guild/api/internal/composition"
	"github.com/forgo/guild/api/internal/model"
)

// CompositionHandler exposes the video compositions
type CompositionHandler struct {
	registry *composition.Registry
}

// NewCompositionHandler creates a new composition handler
func NewCompositionHandler(registry *composition.Registry) *CompositionHandler {
	return &CompositionHandler{
		registry: registry,
	}
}

// List handles GET /api/compositions
func (h *CompositionHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	out := make([]composition.Metadata, 0, len(list))
	for _, c := range list {
		out = append(out, c.Metadata())
	}
	WriteCollection(w, http.StatusOK, out, nil, map[string]string{
		"self": "/api/compositions",
	})
}

// Get handles GET /api/compositions/{id}
func (h *CompositionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := h.registry.Get(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, c.Metadata(), map[string]string{
		"self":   "/api/compositions/" + id,
		"frames": "/api/compositions/" + id + "/frames/{frame}",
	})
}

// Frame handles GET /api/compositions/{id}/frames/{frame}
func (h *CompositionHandler) Frame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	n, err := strconv.Atoi(r.PathValue("frame"))
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "frame", Message: "frame must be an integer"},
		}))
		return
	}

	c, err := h.registry.Get(id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	state, err := c.Frame(n)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, state, map[string]string{
		"composition": "/api/compositions/" + id,
	})
}
