package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/workflow"
)

// AnalyzeHandler relays one captured selfie to the analysis workflow and
// returns the normalized personal-color result. It is stateless; nothing
// about the image or the result is kept after the exchange.
type AnalyzeHandler struct {
	config *config.Config
	flows  *workflow.Client
}

// NewAnalyzeHandler creates the analyze relay. A missing webhook URL is not
// fatal here; the defect is reported per request so the rest of the API
// stays up.
func NewAnalyzeHandler(cfg *config.Config) *AnalyzeHandler {
	h := &AnalyzeHandler{config: cfg}

	if cfg.Analyze.WebhookURL != "" {
		client, err := workflow.NewClient(cfg.Analyze.WebhookURL)
		if err != nil {
			log.Printf("[analyze] invalid webhook configuration: %v", err)
		} else {
			h.flows = client
		}
	}
	return h
}

// analyzeRequest is the client-facing request body.
type analyzeRequest struct {
	Image     string `json:"image"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

// Analyze handles POST /api/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Image == "" || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "image and userId are required")
		return
	}

	if h.flows == nil {
		log.Printf("[analyze] ANALYZE_WEBHOOK_URL is not set")
		respondError(w, http.StatusInternalServerError, errServerConfiguration)
		return
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	log.Printf("[analyze] relaying capture: user=%s imageBytes=%d",
		sanitizeForLog(req.UserID), len(req.Image))

	result, err := h.flows.Analyze(r.Context(), workflow.AnalyzeRequest{
		ClientUUID: req.UserID,
		Image:      req.Image,
		Timestamp:  timestamp,
	})
	if err != nil {
		// The raw upstream body lives in the wrapped error; it is logged
		// here and never forwarded to the client.
		log.Printf("[analyze] relay failed: %v", err)
		respondFault(w, err, "image analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}
