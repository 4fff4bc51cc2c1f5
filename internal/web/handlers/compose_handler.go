package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/kozaktomas/huetone/internal/compose"
	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/faults"
)

// ComposeHandler relays a styling request to the deployment's active
// compose provider and guarantees the returned composedImageUrl is directly
// usable as an image source.
type ComposeHandler struct {
	config   *config.Config
	provider compose.Provider
}

// NewComposeHandler creates the compose relay. provider may be nil when the
// deployment is misconfigured; the defect is then reported per request.
func NewComposeHandler(cfg *config.Config, provider compose.Provider) *ComposeHandler {
	return &ComposeHandler{config: cfg, provider: provider}
}

// Compose handles POST /api/compose.
func (h *ComposeHandler) Compose(w http.ResponseWriter, r *http.Request) {
	var req compose.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	// userImage is required by every provider, so an incomplete request is
	// the client's problem even when the deployment is misconfigured.
	if req.UserImage == "" {
		respondError(w, http.StatusBadRequest, "userImage is required")
		return
	}

	if h.provider == nil {
		log.Printf("[compose] no provider configured")
		respondError(w, http.StatusInternalServerError, errServerConfiguration)
		return
	}

	if err := h.provider.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, faults.Message(err, errInvalidRequestBody))
		return
	}

	// Job id for correlating the provider round trip in operator logs.
	jobID := uuid.NewString()
	log.Printf("[compose] job=%s provider=%s colorType=%s",
		jobID, h.provider.Name(), sanitizeForLog(req.ColorType))

	output, err := h.provider.Compose(r.Context(), req)
	if err != nil {
		log.Printf("[compose] job=%s provider call failed: %v", jobID, err)
		respondFault(w, err, "styling image generation failed")
		return
	}

	imageURL, err := output.Resolve(r.Context())
	if err != nil {
		log.Printf("[compose] job=%s output resolution failed: %v", jobID, err)
		respondFault(w, err, "styling image generation failed")
		return
	}

	log.Printf("[compose] job=%s done", jobID)
	respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"composedImageUrl": imageURL,
	})
}
