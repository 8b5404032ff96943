package comparison

//go:generate mockgen -source=ports.go -destination=mocks/ports.go -package=mocks

import "context"

// Summarizer is the LLM collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Synthesizer is the speech collaborator. It receives normalized text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
