package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/session", h.GetSession)
		r.Post("/messages", h.SubmitMessage)
		r.Get("/transcript", h.GetTranscript)
	})
}
