// zara/services/llm/llm.go
package llm

import (
	"context"
	"errors"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer performs one non-streaming completion against a named model and
// returns the first choice's text.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

var (
	ErrNotConfigured   = errors.New("completion provider is not configured")
	ErrEmptyCompletion = errors.New("completion returned no content")
)

// Unconfigured stands in for the provider when no API key is available.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, string, []Message) (string, error) {
	return "", ErrNotConfigured
}
