package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kozaktomas/huetone/internal/faults"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// errServerConfiguration hides deployment details from clients.
const errServerConfiguration = "server configuration error"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends a bare error response, used for failures detected
// before the upstream call (validation, configuration).
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure sends the {success:false, error} envelope used once an
// upstream exchange has started.
func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "error": message})
}

// respondFault maps a classified error onto the failure envelope. The raw
// error stays with the caller for logging; only the classified message
// leaves the relay.
func respondFault(w http.ResponseWriter, err error, fallback string) {
	respondFailure(w, faults.HTTPStatus(err), faults.Message(err, fallback))
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
