package synthesizer

import (
	"context"
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// CompactBuilder packs the chunks into as few context windows as the
// larger of the two templates allows, then refines over the packed
// chunks. Semantics match RefineBuilder; only the call count shrinks.
type CompactBuilder struct {
	refine *RefineBuilder
}

// NewCompactBuilder creates a CompactBuilder.
func NewCompactBuilder(sctx *service.Context, textQA, refineTmpl prompts.BasePromptTemplate) (*CompactBuilder, error) {
	inner, err := NewRefineBuilder(sctx, textQA, refineTmpl)
	if err != nil {
		return nil, err
	}
	return &CompactBuilder{refine: inner}, nil
}

func (b *CompactBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	packed, err := b.packChunks(queryStr, textChunks)
	if err != nil {
		return nil, err
	}
	return b.refine.GetResponse(ctx, queryStr, packed)
}

// packChunks repacks the chunks against the larger of the query-bound
// QA and refine templates, so every window the refine loop sees is as
// full as the budget allows.
func (b *CompactBuilder) packChunks(queryStr string, textChunks []string) ([]string, error) {
	if len(textChunks) == 0 {
		return nil, nil
	}

	helper := b.refine.sctx.PromptHelper
	qa := b.refine.textQA.PartialFormat(map[string]string{"query_str": queryStr})
	refine := b.refine.refineTmpl.PartialFormat(map[string]string{"query_str": queryStr})
	tmpl := biggestPrompt(helper.Tokenizer, qa, refine)

	packed, err := helper.CompactTextChunks(tmpl, textChunks)
	if err != nil {
		return nil, fmt.Errorf("compact: %w", err)
	}
	return packed, nil
}

var _ ResponseBuilder = (*CompactBuilder)(nil)
