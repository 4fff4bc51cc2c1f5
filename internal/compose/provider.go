// Package compose turns a captured selfie plus a personal-color palette
// into a styled composite image by calling whichever external provider the
// deployment wires in. Exactly one provider is active per deployment; the
// choice is configuration, not a per-request option.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/kozaktomas/huetone/internal/config"
	"github.com/kozaktomas/huetone/internal/faults"
	"github.com/kozaktomas/huetone/internal/workflow"
)

// Request carries the user photo and the analysis-derived styling bundle.
// ExampleImageURL is only meaningful for the faceswap provider; the color
// fields only for the generative providers.
type Request struct {
	UserImage       string               `json:"userImage"`
	ColorType       string               `json:"colorType"`
	ColorName       string               `json:"colorName"`
	MakeupColors    []workflow.ColorItem `json:"makeupColors"`
	FashionColors   []workflow.ColorItem `json:"fashionColors"`
	MakeupGuide     string               `json:"makeupGuide"`
	FashionGuide    string               `json:"fashionGuide"`
	ExampleImageURL string               `json:"exampleImageUrl"`
}

// Provider is one compose backend.
type Provider interface {
	Name() string
	// Validate checks the provider-specific required fields before any
	// upstream call is made.
	Validate(req Request) error
	// Compose performs the upstream call and returns its raw output shape.
	Compose(ctx context.Context, req Request) (Output, error)
}

// New builds the provider selected by COMPOSE_PROVIDER. A missing
// credential or URL for the selected provider is a deployment defect.
func New(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch strings.ToLower(cfg.Compose.Provider) {
	case "workflow":
		return newWorkflowProvider(cfg.Compose.WebhookURL)
	case "openai":
		return newOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return newGeminiProvider(ctx, cfg.Gemini)
	case "faceswap":
		return newFaceSwapProvider(cfg.FaceSwap, cfg.Compose.PublicBaseURL)
	default:
		return nil, faults.Newf(faults.Configuration,
			"unknown compose provider %q (want workflow, openai, gemini or faceswap)", cfg.Compose.Provider)
	}
}

// stylingPrompt is the fixed template the generative providers render the
// palette into. Only the palette values vary; the instructions do not.
func stylingPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Create a polished styling portrait of the person in the attached photo, ")
	b.WriteString("keeping their identity and facial features unchanged. ")
	fmt.Fprintf(&b, "Style them for the %q personal color season", req.ColorType)
	if req.ColorName != "" {
		fmt.Fprintf(&b, " (%s)", req.ColorName)
	}
	b.WriteString(".")

	if len(req.MakeupColors) > 0 {
		fmt.Fprintf(&b, " Makeup palette: %s.", joinColors(req.MakeupColors))
	}
	if req.MakeupGuide != "" {
		fmt.Fprintf(&b, " Makeup guide: %s", req.MakeupGuide)
	}
	if len(req.FashionColors) > 0 {
		fmt.Fprintf(&b, " Outfit palette: %s.", joinColors(req.FashionColors))
	}
	if req.FashionGuide != "" {
		fmt.Fprintf(&b, " Fashion guide: %s", req.FashionGuide)
	}
	return b.String()
}

func joinColors(items []workflow.ColorItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Hex != "" && item.Hex != workflow.PlaceholderHex {
			parts = append(parts, fmt.Sprintf("%s (%s)", item.Color, item.Hex))
		} else {
			parts = append(parts, item.Color)
		}
	}
	return strings.Join(parts, ", ")
}

// requireUserImage is the validation shared by every provider.
func requireUserImage(req Request) error {
	if req.UserImage == "" {
		return faults.New(faults.Validation, "userImage is required")
	}
	return nil
}

// requireColorType applies to the providers that render the palette.
func requireColorType(req Request) error {
	if err := requireUserImage(req); err != nil {
		return err
	}
	if req.ColorType == "" {
		return faults.New(faults.Validation, "colorType is required")
	}
	return nil
}
