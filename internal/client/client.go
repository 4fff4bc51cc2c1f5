// Package client is a small API client for the huetone relay server. The
// command line tools use it, and it is the reference for anything else that
// talks to the relay: one bounded attempt per call, no automatic retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kozaktomas/huetone/internal/faults"
	"github.com/kozaktomas/huetone/internal/workflow"
)

const (
	// AnalyzeTimeout bounds a color analysis round trip. The workflow behind
	// the relay runs a vision model, so this is generous on purpose.
	AnalyzeTimeout = 120 * time.Second

	// ComposeTimeout bounds a styling image request.
	ComposeTimeout = 60 * time.Second
)

const (
	msgTimeout = "request timed out, check your network and try again"
	msgNetwork = "check your network connection"
)

// Client talks to a running huetone relay server.
type Client struct {
	baseURL   string
	parsedURL *url.URL
	http      *http.Client
}

// New creates a client for the relay at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() {
		return nil, faults.Newf(faults.Configuration, "invalid server URL %q", baseURL)
	}
	return &Client{
		baseURL:   baseURL,
		parsedURL: parsed,
		http:      &http.Client{},
	}, nil
}

// AnalyzeRequest is the payload for POST /api/analyze.
type AnalyzeRequest struct {
	Image     string `json:"image"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ComposeRequest is the payload for POST /api/compose.
type ComposeRequest struct {
	UserImage       string               `json:"userImage"`
	ColorType       string               `json:"colorType"`
	ColorName       string               `json:"colorName,omitempty"`
	MakeupColors    []workflow.ColorItem `json:"makeupColors,omitempty"`
	FashionColors   []workflow.ColorItem `json:"fashionColors,omitempty"`
	MakeupGuide     string               `json:"makeupGuide,omitempty"`
	FashionGuide    string               `json:"fashionGuide,omitempty"`
	ExampleImageURL string               `json:"exampleImageUrl,omitempty"`
}

// Analyze sends a captured image for personal color analysis. The call is
// bounded by AnalyzeTimeout.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*workflow.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, AnalyzeTimeout)
	defer cancel()

	var resp struct {
		Success bool                     `json:"success"`
		Data    *workflow.AnalysisResult `json:"data"`
		Error   string                   `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/analyze", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, faults.New(faults.Upstream, serverMessage(resp.Error, "image analysis failed"))
	}
	return resp.Data, nil
}

// Compose requests an AI styled composite image. The call is bounded by
// ComposeTimeout. The returned string is always usable as an image source.
func (c *Client) Compose(ctx context.Context, req ComposeRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ComposeTimeout)
	defer cancel()

	var resp struct {
		Success          bool   `json:"success"`
		ComposedImageURL string `json:"composedImageUrl"`
		Error            string `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/compose", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.ComposedImageURL == "" {
		return "", faults.New(faults.Upstream, serverMessage(resp.Error, "styling image generation failed"))
	}
	return resp.ComposedImageURL, nil
}

// Health checks that the relay is reachable.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.parsedURL.JoinPath("/api/v1/health").String(), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return faults.Newf(faults.Upstream, "health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// postJSON performs a POST request and unmarshals the JSON response into
// result. Non-2xx responses are not fatal here: the relay uses the response
// body's error field for failures, so the caller inspects the decoded result.
func (c *Client) postJSON(ctx context.Context, endpoint string, requestBody, result any) error {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.parsedURL.JoinPath(endpoint).String(), bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		if resp.StatusCode >= 400 {
			return faults.Newf(faults.Upstream, "request failed with status %d", resp.StatusCode)
		}
		return faults.Wrap(faults.PayloadDecode, "could not decode server response", err)
	}
	return nil
}

// classifyTransportError separates timeouts from other network failures so
// callers can show the right advice to the user.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return faults.Wrap(faults.Timeout, msgTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return faults.Wrap(faults.Timeout, msgTimeout, err)
	}
	return faults.Wrap(faults.Network, msgNetwork, err)
}

// serverMessage prefers the relay's error string when it sent one.
func serverMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
