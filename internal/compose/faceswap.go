package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/faults"
)

// faceSwapProvider swaps the user's face onto a styled example photo via a
// hosted prediction API. The service is inconsistent about its output
// shape: synchronous calls answer with a URL string or a list, asynchronous
// ones with a pending prediction whose URL has to be polled.
type faceSwapProvider struct {
	url           string
	token         string
	publicBaseURL string
	pollInterval  time.Duration
	http          *http.Client
}

func newFaceSwapProvider(cfg config.FaceSwapConfig, publicBaseURL string) (*faceSwapProvider, error) {
	if cfg.URL == "" || cfg.Token == "" {
		return nil, faults.New(faults.Configuration, "FACESWAP_URL and FACESWAP_TOKEN must be configured")
	}
	return &faceSwapProvider{
		url:           cfg.URL,
		token:         cfg.Token,
		publicBaseURL: publicBaseURL,
		pollInterval:  time.Duration(cfg.PollSeconds) * time.Second,
		http:          http.DefaultClient,
	}, nil
}

func (p *faceSwapProvider) Name() string {
	return "faceswap"
}

func (p *faceSwapProvider) Validate(req Request) error {
	if err := requireUserImage(req); err != nil {
		return err
	}
	if req.ExampleImageURL == "" {
		return faults.New(faults.Validation, "exampleImageUrl is required")
	}
	return nil
}

// prediction is the face-swap service's response envelope.
type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func (p *faceSwapProvider) Compose(ctx context.Context, req Request) (Output, error) {
	payload := map[string]any{
		"input": map[string]any{
			"swap_image":   req.UserImage,
			"target_image": p.absoluteURL(req.ExampleImageURL),
		},
	}

	pred, err := p.post(ctx, p.url, payload)
	if err != nil {
		return Output{}, err
	}
	return p.decodePrediction(pred)
}

// decodePrediction picks the output variant once, at the boundary.
func (p *faceSwapProvider) decodePrediction(pred *prediction) (Output, error) {
	if pred.Status == "failed" || pred.Status == "canceled" {
		msg := pred.Error
		if msg == "" {
			msg = fmt.Sprintf("face swap ended with status %q", pred.Status)
		}
		return Output{}, faults.New(faults.Upstream, msg)
	}

	if len(pred.Output) > 0 && string(pred.Output) != "null" {
		var single string
		if err := json.Unmarshal(pred.Output, &single); err == nil {
			return DirectURL(single), nil
		}
		var many []string
		if err := json.Unmarshal(pred.Output, &many); err == nil {
			return ArrayWrapped(many), nil
		}
		return Output{}, faults.New(faults.Shape, "face swap output has an unsupported shape")
	}

	if pred.URLs.Get != "" {
		getURL := pred.URLs.Get
		return AsyncURL(func(ctx context.Context) (string, error) {
			return p.pollPrediction(ctx, getURL)
		}), nil
	}
	return Output{}, faults.New(faults.Upstream, "face swap returned no output")
}

// pollPrediction waits for an asynchronous prediction to reach a terminal
// state and returns its first output URL. The caller's context bounds the
// wait.
func (p *faceSwapProvider) pollPrediction(ctx context.Context, getURL string) (string, error) {
	for {
		pred, err := p.get(ctx, getURL)
		if err != nil {
			return "", err
		}

		switch pred.Status {
		case "succeeded":
			var single string
			if err := json.Unmarshal(pred.Output, &single); err == nil {
				return single, nil
			}
			var many []string
			if err := json.Unmarshal(pred.Output, &many); err == nil && len(many) > 0 {
				return many[0], nil
			}
			return "", faults.New(faults.Shape, "face swap output has an unsupported shape")
		case "failed", "canceled":
			msg := pred.Error
			if msg == "" {
				msg = fmt.Sprintf("face swap ended with status %q", pred.Status)
			}
			return "", faults.New(faults.Upstream, msg)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}

func (p *faceSwapProvider) post(ctx context.Context, url string, payload any) (*prediction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling face swap payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating face swap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return p.do(req)
}

func (p *faceSwapProvider) get(ctx context.Context, url string) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating face swap request: %w", err)
	}
	return p.do(req)
}

func (p *faceSwapProvider) do(req *http.Request) (*prediction, error) {
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling face swap service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading face swap response: %w", err)
	}

	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return nil, faults.Wrap(faults.UpstreamAuth, "face swap service rejected the API credential",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	case resp.StatusCode == 429:
		return nil, faults.Wrap(faults.UpstreamRateLimited, "face swap rate limit exceeded, try again later",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, faults.Wrap(faults.Upstream,
			fmt.Sprintf("face swap call failed with status %d", resp.StatusCode),
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var pred prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, faults.Wrap(faults.Shape, "face swap response is not valid JSON", err)
	}
	return &pred, nil
}

// absoluteURL resolves a relative example-image path against the public
// base URL; the face-swap service cannot fetch relative paths.
func (p *faceSwapProvider) absoluteURL(path string) string {
	if p.publicBaseURL == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimSuffix(p.publicBaseURL, "/") + path
}
