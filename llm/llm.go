package llm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/bill-diff/config"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("LLM returned empty response")

// ErrNotConfigured is returned on every call when no API key was found at
// startup.
var ErrNotConfigured = errors.New("LLM API key not configured")

// Client turns a prompt into a summary.
type Client interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// New builds the client selected by cfg.Provider. A missing API key does
// not fail startup; the returned client reports ErrNotConfigured instead.
func New(ctx context.Context, cfg config.LLM) (Client, error) {
	if cfg.APIKey == "" {
		return unconfigured{}, nil
	}
	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout)
	case config.LLMProviderGoogleAI:
		return NewGoogleAIClient(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return nil, errors.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

type unconfigured struct{}

func (unconfigured) Summarize(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
