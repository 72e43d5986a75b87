package files

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers indexed files and workspace routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/files", h.ListFiles)
	r.Get("/info", h.GetInfo)
}
