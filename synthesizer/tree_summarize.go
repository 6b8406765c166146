package synthesizer

import (
	"context"
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// DefaultNumChildren is how many chunks feed each summary node.
const DefaultNumChildren = 10

// TreeSummarizeBuilder summarizes fixed-size groups of chunks bottom-up,
// level by level, until a single summary remains. Group order is
// preserved so the final summary reads the chunks in input order.
type TreeSummarizeBuilder struct {
	sctx        *service.Context
	summaryTmpl prompts.BasePromptTemplate
	numChildren int
}

// TreeOption configures a TreeSummarizeBuilder.
type TreeOption func(*TreeSummarizeBuilder)

// WithNumChildren sets how many chunks feed each summary node.
func WithNumChildren(n int) TreeOption {
	return func(b *TreeSummarizeBuilder) {
		b.numChildren = n
	}
}

// NewTreeSummarizeBuilder creates a TreeSummarizeBuilder. A nil template
// falls back to the tree-summarize default.
func NewTreeSummarizeBuilder(sctx *service.Context, summaryTmpl prompts.BasePromptTemplate, opts ...TreeOption) (*TreeSummarizeBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}
	if summaryTmpl == nil {
		summaryTmpl = prompts.DefaultTreeSummarizePrompt
	}

	b := &TreeSummarizeBuilder{
		sctx:        sctx,
		summaryTmpl: summaryTmpl,
		numChildren: DefaultNumChildren,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.numChildren < 2 {
		return nil, fmt.Errorf("tree summarize: num_children must be at least 2, got %d", b.numChildren)
	}
	return b, nil
}

func (b *TreeSummarizeBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	rec := &promptRecorder{}

	if len(textChunks) == 0 {
		answer, err := b.summarize(ctx, rec, queryStr, "")
		if err != nil {
			return nil, err
		}
		return &Response{Response: answer, ExtraInfo: rec.extraInfo()}, nil
	}

	tmpl := b.summaryTmpl.PartialFormat(map[string]string{"query_str": queryStr})

	level := textChunks
	for len(level) > 1 {
		next, err := b.summarizeLevel(ctx, rec, queryStr, tmpl, level)
		if err != nil {
			return nil, err
		}
		if len(next) >= len(level) {
			return nil, fmt.Errorf("tree summarize: level of %d chunks did not reduce", len(level))
		}
		level = next
	}

	// A single leaf still gets one summary pass so the answer always
	// comes from the summary template.
	if len(rec.calls) == 0 {
		answer, err := b.summarize(ctx, rec, queryStr, level[0])
		if err != nil {
			return nil, err
		}
		return &Response{Response: answer, ExtraInfo: rec.extraInfo()}, nil
	}
	return &Response{Response: level[0], ExtraInfo: rec.extraInfo()}, nil
}

// summarizeLevel collapses one tree level: chunks are grouped in input
// order, numChildren per group with the remainder on the last group,
// each group is repacked to the window budget, and every packed piece
// produces one summary call.
func (b *TreeSummarizeBuilder) summarizeLevel(ctx context.Context, rec *promptRecorder, queryStr string, tmpl prompts.BasePromptTemplate, level []string) ([]string, error) {
	var next []string
	for _, group := range groupChunks(level, b.numChildren) {
		packed, err := b.sctx.PromptHelper.CompactTextChunks(tmpl, group)
		if err != nil {
			return nil, fmt.Errorf("tree summarize: %w", err)
		}
		if len(packed) == 0 {
			packed = []string{""}
		}
		for _, piece := range packed {
			summary, err := b.summarize(ctx, rec, queryStr, piece)
			if err != nil {
				return nil, err
			}
			next = append(next, summary)
		}
	}
	return next, nil
}

func (b *TreeSummarizeBuilder) summarize(ctx context.Context, rec *promptRecorder, queryStr, contextStr string) (string, error) {
	completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.summaryTmpl, map[string]string{
		"query_str":   queryStr,
		"context_str": contextStr,
	})
	if err != nil {
		return "", fmt.Errorf("tree summarize: %w", err)
	}
	rec.record(fmt.Sprintf("summary_%d", len(rec.calls)), rendered)
	return completion, nil
}

// groupChunks partitions chunks into groups of size in input order; the
// last group takes the remainder.
func groupChunks(chunks []string, size int) [][]string {
	var groups [][]string
	for i := 0; i < len(chunks); i += size {
		end := i + size
		if end > len(chunks) {
			end = len(chunks)
		}
		groups = append(groups, chunks[i:end])
	}
	return groups
}

var _ ResponseBuilder = (*TreeSummarizeBuilder)(nil)
