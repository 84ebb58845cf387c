// Package tokenizer counts rendered text against a tokenizer model.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/promptpack/promptpack/pkg/errors"
)

// Counter counts tokens for a fixed model. Implementations must be
// deterministic for a given model and text.
type Counter interface {
	Count(text string) (int, error)
	Model() string
	// Limit returns the model's context window in tokens, 0 when unknown.
	Limit() int
}

// modelLimits maps known model names to their context window sizes.
var modelLimits = map[string]int{
	"gpt-4o":        128000,
	"gpt-4o-mini":   128000,
	"gpt-4-turbo":   128000,
	"gpt-4":         8192,
	"gpt-3.5-turbo": 16385,
}

// Limit returns the context window for a model, 0 when unknown.
func Limit(model string) int {
	return modelLimits[model]
}

// Tiktoken is a Counter backed by the tiktoken BPE encodings.
type Tiktoken struct {
	model string
	limit int
	enc   *tiktoken.Tiktoken
}

// NewTiktoken creates a tiktoken-backed counter for the given model.
// An unknown model is a configuration error: the run cannot proceed
// without a usable tokenizer.
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, errors.TokenizerError(fmt.Sprintf("no tokenizer for model %q", model), err)
	}

	return &Tiktoken{
		model: model,
		limit: modelLimits[model],
		enc:   enc,
	}, nil
}

// Count returns the number of tokens in text.
func (t *Tiktoken) Count(text string) (int, error) {
	return len(t.enc.Encode(text, nil, nil)), nil
}

// Model returns the model name the counter was built for.
func (t *Tiktoken) Model() string {
	return t.model
}

// Limit returns the model's context window in tokens.
func (t *Tiktoken) Limit() int {
	return t.limit
}
