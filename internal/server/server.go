// Package server exposes the pipeline over HTTP: schedule and publish
// triggers, the cron entry point and a read-only news API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"newspress/internal/config"
	"newspress/internal/core"
	"newspress/internal/logger"
	"newspress/internal/pool"
)

// Pipeline is the subset of the publisher the HTTP layer drives.
type Pipeline interface {
	Prepare(ctx context.Context) (*core.PrepareReport, error)
	Publish(ctx context.Context) (*core.PublishReport, error)
	DuePreview() []core.Article
	Status() core.ScheduleStatus
	Pool() *pool.Pool
}

// Server represents the HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	pipeline   Pipeline
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance.
func New(pipeline Pipeline, cfg config.Server) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		pipeline: pipeline,
		config:   cfg,
		log:      logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  parseTimeout(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: parseTimeout(cfg.WriteTimeout, 120*time.Second),
	}

	return s
}

func parseTimeout(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// A publish pass sleeps between posts, so the timeout must cover a
	// full slot's worth of sequential WordPress calls.
	s.router.Use(middleware.Timeout(120 * time.Second))

	if s.config.CORSEnabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures routes for the server.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/schedule", s.handleScheduleStatus)
		r.Post("/schedule", s.handleScheduleAction)

		r.Get("/publish", s.handlePublishStatus)
		r.Post("/publish", s.handlePublish)

		// Hosted cron services hit this with GET; both verbs run the
		// same publish pass.
		r.Get("/cron", s.handleCron)
		r.Post("/cron", s.handleCron)

		r.Route("/news", func(r chi.Router) {
			r.Get("/", s.handleListNews)
			r.Get("/{id}", s.handleGetNews)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing).
func (s *Server) Router() *chi.Mux {
	return s.router
}
