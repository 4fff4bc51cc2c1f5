// Package web hosts the relay API the browser frontend talks to. The relay
// is stateless: every request is one upstream round trip with no shared
// mutable state and no persistence.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kozaktomas/huetone/internal/compose"
	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	provider   compose.Provider
}

// NewServer creates a new web server. A misconfigured compose provider is
// logged and reported per request instead of failing startup, so the
// analyze path keeps working.
func NewServer(ctx context.Context, cfg *config.Config, port int, host string) *Server {
	r := chi.NewRouter()

	provider, err := compose.New(ctx, cfg)
	if err != nil {
		log.Printf("compose provider unavailable: %v", err)
		provider = nil
	}

	s := &Server{
		config:   cfg,
		router:   r,
		provider: provider,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(3 * time.Minute))
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))

	s.setupRoutes()

	// Generous write timeout: the analyze relay waits on a slow external
	// workflow; the client side enforces the 120s bound.
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
