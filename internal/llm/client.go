package llm

import (
	"context"
)

// Client is the single capability the translation wrapper needs from a
// generative model: prompt in, text out.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
