package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobtracker/internal/handlers/api"
	"jobtracker/internal/validation"
)

// Store is the persistence the routes depend on. *db.DB satisfies it.
type Store interface {
	api.ApplicationStore
	api.SchemaChecker
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store Store, validator *validation.Validator) {
	applicationHandler := api.NewApplicationHandler(store, validator)
	analyticsHandler := api.NewAnalyticsHandler(store)
	healthHandler := api.NewHealthHandler(store)

	// Operational routes
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Analytics routes
	analytics := s.App.Group("/api/analytics")
	analytics.Post("/process", analyticsHandler.Process)
	analytics.Get("/enhanced-stats", analyticsHandler.EnhancedStats)
	analytics.Get("/health", analyticsHandler.Health)

	// Application routes - /count must precede /:id
	applications := s.App.Group("/api/applications")
	applications.Get("/", applicationHandler.List)
	applications.Get("/count", applicationHandler.Count)
	applications.Get("/:id", applicationHandler.Get)
	applications.Post("/", applicationHandler.Create)
	applications.Put("/:id", applicationHandler.Update)
	applications.Delete("/:id", applicationHandler.Delete)
}
