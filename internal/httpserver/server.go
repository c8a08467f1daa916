// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/darrylwest/service-uptime/internal/config"
	"github.com/darrylwest/service-uptime/internal/httpserver/deps"
	"github.com/darrylwest/service-uptime/internal/httpserver/mw"
	"github.com/darrylwest/service-uptime/internal/httpserver/routes"
	"github.com/darrylwest/service-uptime/internal/logger"
)

// untrackedPaths are probes and scrapes that should not count as accesses.
var untrackedPaths = []string{"/healthz", "/readyz", "/metrics"}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// NewRouter builds the router (middlewares + route registration).
func NewRouter(d deps.Deps) http.Handler {
	r := chi.NewRouter()

	// --- Global middlewares (safe defaults)
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)                  // X-Request-ID on each request
	r.Use(mw.Log(d.Logger))                      // structured access logs
	r.Use(mw.Track(d.Status, untrackedPaths...)) // access/error counters; sees the 500 written by Recoverer
	r.Use(middleware.Recoverer)                  // never crash the process on panic
	r.Use(middleware.Timeout(2 * time.Second))   // per-request timeout

	routes.RegisterAll(r, d)

	return r
}

// New builds the HTTP server.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:   s,
		logger: loggerClient,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}

// Handler returns the router served by s.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
