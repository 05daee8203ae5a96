package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the wellness routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.HandleGetSummary)
}
