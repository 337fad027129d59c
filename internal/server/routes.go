package server

import (
	"github.com/nameforge/nameforge/internal/server/handlers"
)

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes() {
	// Core suggestion stream
	s.router.Post("/api/suggest", s.suggest.ServeHTTP)

	// Health endpoints
	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)
	s.router.Get("/health/startup", s.health.StartupHandler)

	// Version endpoint
	s.router.Get("/version", handlers.VersionHandler)

	// Metrics endpoint (in server package to access HandleError)
	s.router.Get("/metrics", MetricsHandler)
}
