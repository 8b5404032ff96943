package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/mrsingh-rishi/bill-diff/logger"
)

// GoogleAIClient generates summaries with Gemini through langchaingo.
type GoogleAIClient struct {
	model     llms.Model
	modelName string
	timeout   time.Duration
}

func NewGoogleAIClient(ctx context.Context, apiKey string, model string, timeout time.Duration) (*GoogleAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	g, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create googleai client")
	}
	return &GoogleAIClient{model: g, modelName: model, timeout: timeout}, nil
}

func (c *GoogleAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug().Str("model", c.modelName).Int("prompt_len", len(prompt)).Msg("sending prompt to Gemini")

	resp, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content failed")
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
