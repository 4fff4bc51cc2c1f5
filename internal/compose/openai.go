package compose

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/faults"
)

// openaiProvider renders the palette into a fixed prompt and asks a hosted
// image model for the styled portrait. The response carries either a URL or
// base64 image bytes depending on the model.
type openaiProvider struct {
	client *openai.Client
	model  string
}

func newOpenAIProvider(cfg config.OpenAIConfig) (*openaiProvider, error) {
	if cfg.Token == "" {
		return nil, faults.New(faults.Configuration, "OPENAI_TOKEN is not configured")
	}
	client := openai.NewClient(option.WithAPIKey(cfg.Token))
	return &openaiProvider{client: &client, model: cfg.Model}, nil
}

func (p *openaiProvider) Name() string {
	return "openai"
}

func (p *openaiProvider) Validate(req Request) error {
	return requireColorType(req)
}

func (p *openaiProvider) Compose(ctx context.Context, req Request) (Output, error) {
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: stylingPrompt(req),
		Model:  openai.ImageModel(p.model),
	})
	if err != nil {
		return Output{}, classifyOpenAIError(err)
	}

	if len(resp.Data) == 0 {
		return Output{}, faults.New(faults.Upstream, "image model returned no output")
	}
	image := resp.Data[0]
	if image.URL != "" {
		return DirectURL(image.URL), nil
	}
	if image.B64JSON != "" {
		return DirectURL("data:image/png;base64," + image.B64JSON), nil
	}
	return Output{}, faults.New(faults.Upstream, "image model returned neither a URL nor image bytes")
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return faults.Wrap(faults.UpstreamAuth, "image provider rejected the API credential", err)
		case 429:
			return faults.Wrap(faults.UpstreamRateLimited, "image provider rate limit exceeded, try again later", err)
		}
		return faults.Wrap(faults.Upstream, "image generation failed", err)
	}
	return faults.Wrap(faults.Upstream, "image generation failed", err)
}
