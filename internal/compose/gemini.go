package compose

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/faults"
	"github.com/kozaktomas/huetone/internal/imaging"
)

// geminiProvider sends the user photo as inline data together with the
// styling prompt to an image-capable Gemini model and reads the composite
// back out of the inline response parts.
type geminiProvider struct {
	client *genai.Client
	model  string
}

func newGeminiProvider(ctx context.Context, cfg config.GeminiConfig) (*geminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, faults.New(faults.Configuration, "GEMINI_API_KEY is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: cfg.Model}, nil
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Validate(req Request) error {
	return requireColorType(req)
}

func (p *geminiProvider) Compose(ctx context.Context, req Request) (Output, error) {
	photo, mime, err := imaging.DecodeDataURI(req.UserImage)
	if err != nil {
		return Output{}, faults.Wrap(faults.Validation, "userImage is not a valid data URI", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(stylingPrompt(req)),
		{InlineData: &genai.Blob{MIMEType: mime, Data: photo}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return Output{}, classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Output{}, faults.New(faults.Upstream, "image model returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return DirectURL(imaging.EncodeDataURI(mimeType, part.InlineData.Data)), nil
		}
	}
	return Output{}, faults.New(faults.Upstream, "image model returned no image bytes")
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return faults.Wrap(faults.UpstreamAuth, "image provider rejected the API credential", err)
		case 429:
			return faults.Wrap(faults.UpstreamRateLimited, "image provider rate limit exceeded, try again later", err)
		}
	}
	return faults.Wrap(faults.Upstream, "image generation failed", err)
}
