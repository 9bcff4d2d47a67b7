/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/planning/*   Matrix projection, cell edits, weekly summary
  /api/stores/*     Store master CRUD + reorder
  /api/skus/*       SKU master CRUD + reorder
  /api/scenarios/*  Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Planning grid routes
		r.Route("/planning", func(r chi.Router) {
			r.Get("/matrix", h.GetMatrix)
			r.Put("/cells", h.EditCell)
			r.Get("/summary", h.GetSummary)
		})

		// Store master routes
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.ListStores)
			r.Post("/", h.CreateStore)
			r.Post("/reorder", h.ReorderStores)
			r.Put("/{code}", h.UpdateStore)
			r.Delete("/{code}", h.DeleteStore)
		})

		// SKU master routes
		r.Route("/skus", func(r chi.Router) {
			r.Get("/", h.ListSkus)
			r.Post("/", h.CreateSku)
			r.Post("/reorder", h.ReorderSkus)
			r.Put("/{code}", h.UpdateSku)
			r.Delete("/{code}", h.DeleteSku)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
