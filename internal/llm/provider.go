package llm

import (
	"context"
	"errors"
)

// Provider is a text-generation backend used for answer grading. It takes
// a fully rendered prompt and returns the raw model output; callers are
// responsible for parsing whatever structure they asked the model for.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled stands in when no API key is configured. Every call fails,
// which graders degrade to their fallback verdict.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", errors.New("llm provider not configured")
}
