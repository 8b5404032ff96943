package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/bill-diff/logger"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint,
// including Gemini's compatibility layer.
type OpenAIClient struct {
	Client  *openai.Client
	Model   string
	Timeout time.Duration
}

func NewOpenAIClient(apiKey string, model string, baseURL string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &OpenAIClient{
		Client:  openai.NewClientWithConfig(clientConfig),
		Model:   model,
		Timeout: timeout,
	}, nil
}

// Summarize sends prompt as a single user message and returns the reply.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	logger.Debug().Str("model", c.Model).Int("prompt_len", len(prompt)).Msg("sending prompt to OpenAI-compatible endpoint")

	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
