// Package service bundles the shared per-deployment collaborators —
// the predictor adapter and the prompt helper — into one immutable
// context passed explicitly to components that need them.
package service

import (
	"fmt"

	"github.com/ragsynth/go-ragsynth/llm"
	"github.com/ragsynth/go-ragsynth/prompthelper"
)

// DefaultMaxChunkOverlap is the overlap budget used when deriving a
// prompt helper from model metadata.
const DefaultMaxChunkOverlap = 200

// Context carries the predictor and prompt helper shared by query
// components. It is constructed once and read-only afterwards, so it
// may be shared across concurrent queries.
type Context struct {
	// Predictor is the model-call boundary.
	Predictor llm.Predictor
	// PromptHelper fits chunks into the model's context window.
	PromptHelper *prompthelper.PromptHelper
}

// NewContext creates a service context from explicit collaborators.
func NewContext(predictor llm.Predictor, helper *prompthelper.PromptHelper) (*Context, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor must not be nil")
	}
	if helper == nil {
		return nil, fmt.Errorf("prompt helper must not be nil")
	}
	return &Context{Predictor: predictor, PromptHelper: helper}, nil
}

// FromPredictor creates a service context with a prompt helper derived
// from the predictor's model metadata.
func FromPredictor(predictor llm.Predictor) (*Context, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor must not be nil")
	}

	md := predictor.Metadata()
	helper, err := prompthelper.NewPromptHelper(md.ContextWindow, md.NumOutput, DefaultMaxChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to derive prompt helper: %w", err)
	}
	return &Context{Predictor: predictor, PromptHelper: helper}, nil
}
