// Package router sets up all HTTP routes and middleware chains for the
// landingpress server: the public read path, the authoring API, and
// the operational endpoints.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landingpress/internal/handlers"
	"landingpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, public *handlers.Public, reval *handlers.Revalidate, health *handlers.Health) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Operational endpoints — no rate limit.
	r.Get("/health", health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Authoring API — rate-limited per client IP.
	apiLimiter := middleware.NewRateLimiter(60, time.Minute)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Post("/validate", api.Validate)
		r.Post("/publish", api.Publish)
		r.Post("/revalidate", reval.Handle)
	})

	// Public read path.
	r.Get("/p/{slug}", public.Page)

	return r
}
