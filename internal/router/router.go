package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"shoepao-backend/internal/handlers"
	"shoepao-backend/internal/middleware"
)

func New(
	conversationHandler *handlers.ConversationHandler,
	messageHandler *handlers.MessageHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Conversation Routes ────
		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/", conversationHandler.Create)
			r.Get("/{id}", conversationHandler.Get)
			r.Delete("/{id}", conversationHandler.Delete)
			r.Post("/{id}/messages", conversationHandler.AddMessage)
			r.Get("/{id}/messages", conversationHandler.ListMessages)
			r.Post("/{id}/chat", conversationHandler.Chat)
		})

		// ──── Message Routes ────
		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.List)
			r.Post("/", messageHandler.Create)
			r.Get("/{id}", messageHandler.Get)
			r.Put("/{id}", messageHandler.Update)
			r.Delete("/{id}", messageHandler.Delete)
		})
	})

	return r
}
