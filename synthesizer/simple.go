package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// SimpleSummarizeBuilder joins all chunks into a single context window
// and answers with exactly one QA call. Unlike the refine family it
// fails outright when the joined text exceeds the window budget.
type SimpleSummarizeBuilder struct {
	sctx   *service.Context
	textQA prompts.BasePromptTemplate
}

// NewSimpleSummarizeBuilder creates a SimpleSummarizeBuilder.
func NewSimpleSummarizeBuilder(sctx *service.Context, textQA prompts.BasePromptTemplate) (*SimpleSummarizeBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}
	if textQA == nil {
		textQA = prompts.DefaultTextQAPrompt
	}
	return &SimpleSummarizeBuilder{sctx: sctx, textQA: textQA}, nil
}

func (b *SimpleSummarizeBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	rec := &promptRecorder{}
	helper := b.sctx.PromptHelper

	text := strings.Join(textChunks, helper.Separator)

	qa := b.textQA.PartialFormat(map[string]string{"query_str": queryStr})
	budget, err := helper.GetChunkSizeGivenPrompt(prompts.EmptyPromptText(qa), 1, 1)
	if err != nil {
		return nil, fmt.Errorf("simple summarize: %w", err)
	}
	if got := len(helper.Tokenizer.Encode(text)); got > budget {
		return nil, fmt.Errorf("simple summarize: joined chunks are %d tokens, budget is %d", got, budget)
	}

	completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.textQA, map[string]string{
		"query_str":   queryStr,
		"context_str": text,
	})
	if err != nil {
		return nil, fmt.Errorf("simple summarize: %w", err)
	}
	rec.record("qa_0", rendered)

	return &Response{Response: completion, ExtraInfo: rec.extraInfo()}, nil
}

var _ ResponseBuilder = (*SimpleSummarizeBuilder)(nil)
