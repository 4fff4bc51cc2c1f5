package config

import (
	"os"
	"strconv"
)

type Config struct {
	Analyze  AnalyzeConfig
	Compose  ComposeConfig
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
	FaceSwap FaceSwapConfig
	Web      WebConfig
}

type AnalyzeConfig struct {
	WebhookURL string // analysis workflow webhook
}

type ComposeConfig struct {
	Provider      string // which compose backend is active: workflow, openai, gemini or faceswap
	WebhookURL    string // styling workflow webhook (workflow provider)
	PublicBaseURL string // public origin for turning relative asset paths into absolute URLs
}

type OpenAIConfig struct {
	Token string
	Model string // defaults to gpt-image-1
}

type GeminiConfig struct {
	APIKey string
	Model  string // defaults to gemini-2.5-flash-image-preview
}

type FaceSwapConfig struct {
	URL         string // prediction endpoint of the face-swap service
	Token       string
	PollSeconds int // delay between polls of an async prediction (default 2)
}

type WebConfig struct {
	AdClientID     string // ad-network client id, presentation chrome only
	AllowedOrigins string // comma-separated CORS whitelist
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envOr reads an environment variable with a fallback default.
func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			WebhookURL: os.Getenv("ANALYZE_WEBHOOK_URL"),
		},
		Compose: ComposeConfig{
			Provider:      envOr("COMPOSE_PROVIDER", "workflow"),
			WebhookURL:    os.Getenv("COMPOSE_WEBHOOK_URL"),
			PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
			Model: envOr("OPENAI_IMAGE_MODEL", "gpt-image-1"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  envOr("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image-preview"),
		},
		FaceSwap: FaceSwapConfig{
			URL:         os.Getenv("FACESWAP_URL"),
			Token:       os.Getenv("FACESWAP_TOKEN"),
			PollSeconds: envInt("FACESWAP_POLL_SECONDS", 2),
		},
		Web: WebConfig{
			AdClientID:     os.Getenv("AD_CLIENT_ID"),
			AllowedOrigins: os.Getenv("WEB_ALLOWED_ORIGINS"),
		},
	}
}
