package synthesizer

import (
	"context"
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// GenerationBuilder answers from the query alone; retrieved chunks are
// ignored entirely.
type GenerationBuilder struct {
	sctx      *service.Context
	inputTmpl prompts.BasePromptTemplate
}

// NewGenerationBuilder creates a GenerationBuilder. A nil template falls
// back to the simple-input default.
func NewGenerationBuilder(sctx *service.Context, inputTmpl prompts.BasePromptTemplate) (*GenerationBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}
	if inputTmpl == nil {
		inputTmpl = prompts.DefaultSimpleInputPrompt
	}
	return &GenerationBuilder{sctx: sctx, inputTmpl: inputTmpl}, nil
}

func (b *GenerationBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	rec := &promptRecorder{}

	completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.inputTmpl, map[string]string{
		"query_str": queryStr,
	})
	if err != nil {
		return nil, fmt.Errorf("generation: %w", err)
	}
	rec.record("input_0", rendered)

	return &Response{Response: completion, ExtraInfo: rec.extraInfo()}, nil
}

var _ ResponseBuilder = (*GenerationBuilder)(nil)
