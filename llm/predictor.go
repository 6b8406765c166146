package llm

import (
	"context"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

// LLMPredictor is the standard Predictor: it renders templates, calls
// the wrapped LLM once per Predict, and counts tokens with the
// configured tokenizer.
type LLMPredictor struct {
	llm       LLM
	tokenizer textsplitter.Tokenizer
	metadata  LLMMetadata
}

// NewLLMPredictor creates a predictor. A nil tokenizer falls back to
// whitespace tokens.
func NewLLMPredictor(model LLM, tokenizer textsplitter.Tokenizer, metadata LLMMetadata) *LLMPredictor {
	if tokenizer == nil {
		tokenizer = textsplitter.NewWhitespaceTokenizer()
	}
	return &LLMPredictor{
		llm:       model,
		tokenizer: tokenizer,
		metadata:  metadata,
	}
}

// Predict renders the template and runs it through the model. A model
// failure is wrapped in a PredictorError and never retried here.
func (p *LLMPredictor) Predict(ctx context.Context, tmpl prompts.BasePromptTemplate, vars map[string]string) (string, string, error) {
	rendered := tmpl.Format(vars)
	completion, err := p.llm.Complete(ctx, rendered)
	if err != nil {
		return "", "", &PredictorError{Model: p.metadata.ModelName, Err: err}
	}
	return completion, rendered, nil
}

// CountTokens measures text with the predictor's tokenizer.
func (p *LLMPredictor) CountTokens(text string) int {
	return len(p.tokenizer.Encode(text))
}

// Metadata describes the active model's limits.
func (p *LLMPredictor) Metadata() LLMMetadata {
	return p.metadata
}

var _ Predictor = (*LLMPredictor)(nil)
