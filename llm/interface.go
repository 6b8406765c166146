// Package llm holds the language-model boundary: the LLM completion
// interface, the predictor adapter that renders prompt templates and
// counts tokens, and the OpenAI-backed implementation.
package llm

import (
	"context"

	"github.com/ragsynth/go-ragsynth/prompts"
)

// LLM is the opaque completion boundary: prompt in, text out. Retry
// policy, if any, belongs behind this interface, not in front of it.
type LLM interface {
	// Complete generates a completion for a given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Predictor renders prompt templates, runs them through a model, and
// measures token counts. Implementations are read-only after
// construction and safe to share across concurrent queries.
type Predictor interface {
	// Predict renders the template with vars, sends it to the model,
	// and returns the completion and the rendered prompt.
	Predict(ctx context.Context, tmpl prompts.BasePromptTemplate, vars map[string]string) (completion string, renderedPrompt string, err error)
	// CountTokens measures text with the predictor's tokenizer.
	CountTokens(text string) int
	// Metadata describes the active model's limits.
	Metadata() LLMMetadata
}
