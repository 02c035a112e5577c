package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
	"github.com/HatzunoMiku/student-forum2/internal/middleware/metrics"
	"github.com/HatzunoMiku/student-forum2/internal/setup"
)

// New creates and configures the router with all routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.New(prometheus.DefaultRegisterer).Middleware)
	// Page CSP: templates use inline styles only, no scripts
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, "default-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	// Operational endpoints
	r.Get("/healthz", h.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Read-only JSON API, open to other origins
	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		api.Get("/threads", h.APIThreadsHandler)
		api.Get("/threads/{id}", h.APIThreadHandler)
	})

	// HTML pages: every request learns the current user and gets a
	// CSRF token; every form POST must present that token.
	r.Group(func(pages chi.Router) {
		pages.Use(authMw.OptionalAuth())
		pages.Use(mw.GenerateCSRFToken(mw.CSRFConfig{SecureCookies: deps.Config.Public.SecureCookies}))
		pages.Use(mw.ValidateCSRFToken())

		pages.Get("/", h.HomeHandler)
		pages.Get("/home", h.HomeHandler)

		pages.Get("/register", h.RegisterGetHandler)
		pages.Post("/register", h.RegisterPostHandler)
		pages.Get("/login", h.LoginGetHandler)
		pages.Post("/login", h.LoginPostHandler)
		pages.Get("/logout", h.LogoutHandler)

		pages.Get("/thread/{id}", h.ThreadGetHandler)
		pages.Post("/thread/{id}", h.ThreadPostHandler)

		// Thread creation requires a session
		pages.Group(func(authed chi.Router) {
			authed.Use(authMw.RequireAuth())
			authed.Get("/thread/new", h.NewThreadGetHandler)
			authed.Post("/thread/new", h.NewThreadPostHandler)
		})
	})

	return r
}
