// Package api assembles the HTTP router. Construction is separate from main
// so tests can stand up the full middleware chain with injected
// configuration and store.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shoplight/publisher/internal/config"
	appMiddleware "github.com/shoplight/publisher/internal/middleware"
	"github.com/shoplight/publisher/internal/publish"
	"github.com/shoplight/publisher/internal/response"
	"github.com/shoplight/publisher/internal/store"

	_ "github.com/shoplight/publisher/docs/swagger"
)

// NewRouter wires middleware and routes around the publish handler.
func NewRouter(cfg *config.Config, st store.Store) http.Handler {
	publishHandler := publish.NewHandler(cfg, st)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.CORS)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.With(appMiddleware.RequireSecret(cfg.UploadSecret)).
			Post("/upload", publishHandler.Upload)
	})

	return r
}
