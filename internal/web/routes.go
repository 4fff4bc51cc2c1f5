package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/huetone/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	analyzeHandler := handlers.NewAnalyzeHandler(s.config)
	composeHandler := handlers.NewComposeHandler(s.config, s.provider)
	clientConfigHandler := handlers.NewClientConfigHandler(s.config)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// Relay API, same paths the browser frontend calls.
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", analyzeHandler.Analyze)
		r.Post("/compose", composeHandler.Compose)
		r.Get("/config", clientConfigHandler.Get)
	})
}
