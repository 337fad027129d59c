// Package server assembles the chi router, middleware stack, and routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/config"
	apperrors "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/observability"
	"github.com/nameforge/nameforge/internal/server/handlers"
	servermw "github.com/nameforge/nameforge/internal/server/middleware"
)

// Server represents the HTTP server.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	host    string
	port    int
	suggest *handlers.SuggestHandler
	health  *handlers.HealthManager
}

// New creates a new HTTP server instance.
func New(host string, port int, suggest *handlers.SuggestHandler, health *handlers.HealthManager) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)

	// Custom middleware in order: RequestID → Metrics → Recovery.
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestMetrics)
	r.Use(servermw.Recovery)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewNotFoundError("The requested resource was not found")
		HandleError(w, req, err)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource")
		HandleError(w, req, err)
	})

	s := &Server{
		router:  r,
		host:    host,
		port:    port,
		suggest: suggest,
		health:  health,
	}

	// Ensure handlers use the centralized error responder.
	handlers.SetHTTPErrorResponder(HandleError)

	s.registerRoutes()

	return s
}

// Start starts the HTTP server. WriteTimeout stays at zero: the suggestion
// stream is open-ended and a fixed write deadline would cut scans short.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	readTimeout := 30 * time.Second
	idleTimeout := 120 * time.Second
	if cfg := config.GetConfig(); cfg != nil {
		if cfg.Server.ReadTimeout > 0 {
			readTimeout = cfg.Server.ReadTimeout
		}
		if cfg.Server.IdleTimeout > 0 {
			idleTimeout = cfg.Server.IdleTimeout
		}
	}

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}

	observability.ServerLogger.Info("Starting HTTP server",
		zap.String("host", s.host),
		zap.Int("port", s.port),
		zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.ServerLogger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the server port for testing.
func (s *Server) Port() int {
	return s.port
}
