// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the single store connection
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/adsfsa-app/internal/config"
	"github.com/deppfellow/adsfsa-app/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/adsfsa-app/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger(s)
//   - the store connection
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB is created here and released in Shutdown; every repository
	// receives it from this container.
	DB *database.Database

	// StartedAt is reported as uptime by the health endpoint.
	StartedAt time.Time

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
// A store that cannot be opened, pinged or given its schema is fatal.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		StartedAt:     time.Now(),
	}, nil
}

// SetupHTTPServer configures the internal net/http server around the
// given router.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores whole seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Uptime is the time elapsed since New.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.StartedAt)
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// In-flight requests are drained until ctx expires, then the store
// connection is released and pending telemetry flushed. The store is
// closed even when the HTTP shutdown times out.
func (s *Server) Shutdown(ctx context.Context) error {
	var httpErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			httpErr = fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.DB.Close()
	s.LoggerService.Shutdown()

	return httpErr
}
