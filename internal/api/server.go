package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	chatapi "github.com/samsontands/RAG/internal/api/chat"
	"github.com/samsontands/RAG/internal/api/docs"
	filesapi "github.com/samsontands/RAG/internal/api/files"
	"github.com/samsontands/RAG/internal/api/middleware"
	"github.com/samsontands/RAG/internal/pkg/response"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	chatHandler *chatapi.Handler,
	filesHandler *filesapi.Handler,
	handlerTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(handlerTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	filesapi.RegisterRoutes(r, filesHandler)

	// Conversations are keyed by the caller's connection
	r.Group(func(r chi.Router) {
		r.Use(middleware.Connection)
		chatapi.RegisterRoutes(r, chatHandler)
	})

	return r
}
