package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// DefaultAccumulateSeparator joins the per-chunk answers.
const DefaultAccumulateSeparator = "\n---------------------\n"

// AccumulateBuilder answers every chunk independently through the QA
// template and joins the answers with a separator, in chunk order.
type AccumulateBuilder struct {
	sctx      *service.Context
	textQA    prompts.BasePromptTemplate
	separator string
	compact   bool
}

// AccumulateOption configures an AccumulateBuilder.
type AccumulateOption func(*AccumulateBuilder)

// WithAccumulateSeparator sets the answer join separator.
func WithAccumulateSeparator(sep string) AccumulateOption {
	return func(b *AccumulateBuilder) {
		b.separator = sep
	}
}

// WithCompactPacking packs the chunks into full context windows before
// accumulating, reducing the call count.
func WithCompactPacking() AccumulateOption {
	return func(b *AccumulateBuilder) {
		b.compact = true
	}
}

// NewAccumulateBuilder creates an AccumulateBuilder.
func NewAccumulateBuilder(sctx *service.Context, textQA prompts.BasePromptTemplate, opts ...AccumulateOption) (*AccumulateBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}
	if textQA == nil {
		textQA = prompts.DefaultTextQAPrompt
	}

	b := &AccumulateBuilder{
		sctx:      sctx,
		textQA:    textQA,
		separator: DefaultAccumulateSeparator,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *AccumulateBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	rec := &promptRecorder{}

	chunks := textChunks
	if b.compact {
		qa := b.textQA.PartialFormat(map[string]string{"query_str": queryStr})
		packed, err := b.sctx.PromptHelper.CompactTextChunks(qa, chunks)
		if err != nil {
			return nil, fmt.Errorf("accumulate: %w", err)
		}
		chunks = packed
	}

	var answers []string
	for _, chunk := range chunks {
		completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.textQA, map[string]string{
			"query_str":   queryStr,
			"context_str": chunk,
		})
		if err != nil {
			return nil, fmt.Errorf("accumulate: %w", err)
		}
		rec.record(fmt.Sprintf("qa_%d", len(rec.calls)), rendered)
		answers = append(answers, completion)
	}

	return &Response{Response: strings.Join(answers, b.separator), ExtraInfo: rec.extraInfo()}, nil
}

var _ ResponseBuilder = (*AccumulateBuilder)(nil)
