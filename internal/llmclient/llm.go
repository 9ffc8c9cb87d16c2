// Package llmclient wraps the external generative-language API behind a
// small text-completion interface.
package llmclient

import (
	"context"
	"errors"
)

// ErrEmptyReply is returned when the model produced no usable text.
var ErrEmptyReply = errors.New("empty reply from model")

// Client is the text-completion surface the orchestrator depends on.
type Client interface {
	// GenerateText sends one prompt and returns the model's free-text reply.
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}
