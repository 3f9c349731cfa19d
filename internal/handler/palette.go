package handler

import (
	"net/http"

	"satchel/internal/httputil"
	"satchel/internal/palette"
)

// PaletteHandler exposes the assignable folder color tags
type PaletteHandler struct {
	registry *palette.Registry
}

// NewPaletteHandler creates a new palette handler
func NewPaletteHandler(registry *palette.Registry) *PaletteHandler {
	return &PaletteHandler{registry: registry}
}

// ListColors returns every assignable color tag ordered by id
// GET /api/palette
func (h *PaletteHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}
