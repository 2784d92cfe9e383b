package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the webhook surface: the action endpoint for the chat
// adapter plus health and a JSON 404.
func NewRouter(actions ActionHandler, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", HealthHandler)
	r.Post("/actions", HandleAction(actions))
	r.NotFound(NotFoundHandler())

	return r
}
