/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend tooling

ROUTE GROUPS:
  /api/lookups/*        Cached dimension lists
  /api/resolve          Name/id resolution
  /api/subsidiaries/*   Hierarchy walks
  /api/consolidation/*  Consolidation root selection
  /api/accounts/*       Account search
  /api/balance          Balance summaries
  /api/query            Ad-hoc query passthrough (dev only)
  /api/health           Liveness probe

SECURITY NOTE:
  No authentication middleware. The service is meant to sit behind an
  internal gateway that terminates auth; the backend credentials never
  leave the server process.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Lookup routes. "currencies" and "all" must register before the
		// {type} wildcard or chi would route them into GetLookup.
		r.Route("/lookups", func(r chi.Router) {
			r.Get("/all", h.GetAllLookups)
			r.Get("/currencies", h.GetCurrencies)
			r.Get("/accountingbooks/{id}/subsidiaries", h.GetBookSubsidiaries)
			r.Get("/{type}", h.GetLookup)
		})

		// Resolution routes
		r.Get("/resolve", h.Resolve)
		r.Route("/subsidiaries", func(r chi.Router) {
			r.Get("/{id}/ancestors", h.GetAncestors)
			r.Get("/{id}/descendants", h.GetDescendants)
		})
		r.Get("/consolidation/root", h.GetConsolidationRoot)

		// Account routes
		r.Get("/accounts/search", h.SearchAccounts)
		r.Get("/balance", h.GetBalance)

		// Dev routes
		r.Post("/query", h.RunQuery)
		r.Get("/health", h.Health)
	})

	return r
}
