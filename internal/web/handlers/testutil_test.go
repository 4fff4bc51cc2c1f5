package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/huetone/internal/config"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Compose: config.ComposeConfig{Provider: "workflow"},
	}
}

// assertStatusCode fails the test if the recorder holds a different status.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	if recorder.Code != want {
		t.Errorf("expected status %d, got %d (body: %s)", want, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError fails the test unless the body is {"error": want}.
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body: %s)", err, recorder.Body.String())
	}
	if body["error"] != want {
		t.Errorf("expected error %q, got %q", want, body["error"])
	}
}

// decodeFailure decodes the {success:false, error} envelope.
func decodeFailure(t *testing.T, recorder *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body: %s)", err, recorder.Body.String())
	}
	return body.Success, body.Error
}

// setupAnalysisWebhook creates a mock workflow webhook that embeds the
// given analysis JSON at the standard extraction path.
func setupAnalysisWebhook(t *testing.T, analysisJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]any{
			map[string]any{
				"output": []any{
					map[string]any{
						"content": []any{map[string]any{"text": analysisJSON}},
					},
				},
			},
		})
	}))
}
