package chat

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the chat API routes on the router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Post("/{sessionID}/messages", h.SendMessage)
		r.Delete("/{sessionID}", h.EndSession)
	})
}
