package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/huetone/internal/workflow"
)

func analyzeBody(t *testing.T, fields map[string]string) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	server := setupAnalysisWebhook(t,
		`{"type":"spring","name":"Spring Light","makeup_colors":["Pink"],"fashion_colors":[]}`)
	defer server.Close()

	cfg := testConfig()
	cfg.Analyze.WebhookURL = server.URL
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image":  "data:image/jpeg;base64,AAAA",
		"userId": "11111111-2222-4333-8444-555555555555",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var body struct {
		Success bool                    `json:"success"`
		Data    workflow.AnalysisResult `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Data.Type != "spring" {
		t.Errorf("unexpected type %q", body.Data.Type)
	}
	if len(body.Data.MakeupColors) != 1 || body.Data.MakeupColors[0].Hex != workflow.PlaceholderHex {
		t.Errorf("color coercion missing: %+v", body.Data.MakeupColors)
	}
}

func TestAnalyzeHandler_MissingUserID(t *testing.T) {
	upstreamCalled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Analyze.WebhookURL = server.URL
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image": "data:image/jpeg;base64,AAAA",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "image and userId are required")
	if upstreamCalled {
		t.Error("no upstream call may be attempted for invalid requests")
	}
}

func TestAnalyzeHandler_MissingImage(t *testing.T) {
	cfg := testConfig()
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"userId": "u-1",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestAnalyzeHandler_InvalidJSON(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig())

	req := httptest.NewRequest("POST", "/api/analyze", bytes.NewBufferString("not json"))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, errInvalidRequestBody)
}

func TestAnalyzeHandler_MissingWebhookConfig(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig()) // no webhook URL

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image":  "data:image/jpeg;base64,AAAA",
		"userId": "u-1",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	assertJSONError(t, recorder, errServerConfiguration)
}

func TestAnalyzeHandler_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded: secret internals", http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Analyze.WebhookURL = server.URL
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image":  "data:image/jpeg;base64,AAAA",
		"userId": "u-1",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	success, msg := decodeFailure(t, recorder)
	if success {
		t.Error("expected success=false")
	}
	// The upstream body is logged, never forwarded.
	if bytes.Contains(recorder.Body.Bytes(), []byte("secret internals")) {
		t.Errorf("upstream body leaked to client: %s", recorder.Body.String())
	}
	if msg == "" {
		t.Error("expected a caller-facing error message")
	}
}

func TestAnalyzeHandler_MalformedUpstreamShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{"unexpected": true}}})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Analyze.WebhookURL = server.URL
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image":  "data:image/jpeg;base64,AAAA",
		"userId": "u-1",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	success, _ := decodeFailure(t, recorder)
	if success {
		t.Error("a shape failure must never yield a partial result")
	}
}

func TestAnalyzeHandler_ForwardsTimestampDefault(t *testing.T) {
	var forwarded workflow.AnalyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&forwarded)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]any{
			map[string]any{
				"output": []any{
					map[string]any{"content": []any{map[string]any{"text": `{"type":"x"}`}}},
				},
			},
		})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Analyze.WebhookURL = server.URL
	handler := NewAnalyzeHandler(cfg)

	req := httptest.NewRequest("POST", "/api/analyze", analyzeBody(t, map[string]string{
		"image":  "data:image/jpeg;base64,AAAA",
		"userId": "u-1",
	}))
	recorder := httptest.NewRecorder()

	handler.Analyze(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	if forwarded.Timestamp == "" {
		t.Error("expected a default timestamp when the client omits one")
	}
	if forwarded.ClientUUID != "u-1" {
		t.Errorf("client uuid not forwarded: %q", forwarded.ClientUUID)
	}
}
