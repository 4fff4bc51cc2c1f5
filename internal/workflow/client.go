package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/kozaktomas/huetone/internal/faults"
)

// Client talks to one operator-configured automation webhook. It is a
// stateless relay: one POST, no retries, no internal timeout (deadlines
// come in through the context).
type Client struct {
	url  *url.URL
	http *http.Client
}

// NewClient validates the webhook URL once so request-time code never has
// to re-check configuration.
func NewClient(rawURL string) (*Client, error) {
	if rawURL == "" {
		return nil, faults.New(faults.Configuration, "webhook URL is not configured")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, faults.Newf(faults.Configuration, "webhook URL %q is not a valid absolute URL", rawURL)
	}
	return &Client{url: parsed, http: http.DefaultClient}, nil
}

// URL returns the configured webhook URL.
func (c *Client) URL() string {
	return c.url.String()
}

// Invoke POSTs a JSON payload to the webhook and returns the raw response
// body. Any non-2xx status is an upstream failure carrying the status code
// and a best-effort read of the body.
func (c *Client) Invoke(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, faults.Wrap(faults.Upstream,
			fmt.Sprintf("webhook call failed with status %d", resp.StatusCode),
			fmt.Errorf("status %d: %s", resp.StatusCode, readErrorBody(resp.Body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading webhook response: %w", err)
	}
	return data, nil
}

// Analyze forwards one captured image to the analysis webhook and
// normalizes the response.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	body, err := c.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	return Normalize(body)
}

// readErrorBody reads the response body for error reporting. A read failure
// must not mask the error we are already handling.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 8192))
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
