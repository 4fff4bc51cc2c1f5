package handlers

import (
	"net/http"

	"github.com/kozaktomas/huetone/internal/config"
)

// ClientConfigHandler exposes the non-secret settings the browser frontend
// needs at boot: the ad-network client id and which compose provider is
// active (the UI labels the compose button differently per provider).
type ClientConfigHandler struct {
	config *config.Config
}

func NewClientConfigHandler(cfg *config.Config) *ClientConfigHandler {
	return &ClientConfigHandler{config: cfg}
}

// Get handles GET /api/config.
func (h *ClientConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"adClientId":      h.config.Web.AdClientID,
		"composeProvider": h.config.Compose.Provider,
	})
}
