package interfaces

import (
	"context"
	"errors"
)

// ErrMalformedCompletion is returned when a JSON-mode completion is not valid JSON.
// Transport failures are returned as-is so callers can tell them apart.
var ErrMalformedCompletion = errors.New("completion is not valid json")

// ModelTier selects the model used for a completion.
type ModelTier string

const (
	// ModelTierMini is the cheap model used for extraction and ranking.
	ModelTierMini ModelTier = "mini"
	// ModelTierFull is the higher-capability model used for document generation.
	ModelTierFull ModelTier = "full"
)

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Tier         ModelTier
	Temperature  float32
	JSONMode     bool
}

// ICompletionClient abstracts the language model provider.

type ICompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
