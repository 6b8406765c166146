package synthesizer

import (
	"context"
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// RefineBuilder answers with the first chunk through the QA template and
// folds every later chunk into the answer through the refine template.
// A predictor failure aborts the run; partial answers are never returned.
type RefineBuilder struct {
	sctx       *service.Context
	textQA     prompts.BasePromptTemplate
	refineTmpl prompts.BasePromptTemplate
}

// NewRefineBuilder creates a RefineBuilder. Nil templates fall back to
// the package defaults.
func NewRefineBuilder(sctx *service.Context, textQA, refineTmpl prompts.BasePromptTemplate) (*RefineBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}
	if textQA == nil {
		textQA = prompts.DefaultTextQAPrompt
	}
	if refineTmpl == nil {
		refineTmpl = prompts.DefaultRefinePrompt
	}
	return &RefineBuilder{sctx: sctx, textQA: textQA, refineTmpl: refineTmpl}, nil
}

// GetResponse walks the chunks in order, asking first and refining after.
// Chunks larger than the window budget are split and each piece takes a
// step of its own. With no chunks at all the QA template still runs once
// with empty context.
func (b *RefineBuilder) GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error) {
	rec := &promptRecorder{}

	if len(textChunks) == 0 {
		answer, err := b.ask(ctx, rec, queryStr, "")
		if err != nil {
			return nil, err
		}
		return &Response{Response: answer, ExtraInfo: rec.extraInfo()}, nil
	}

	answer, err := b.refineOver(ctx, rec, queryStr, textChunks)
	if err != nil {
		return nil, err
	}
	return &Response{Response: answer, ExtraInfo: rec.extraInfo()}, nil
}

// refineOver runs the refine loop over chunks and is shared with the
// compact builder, which packs its chunks first.
func (b *RefineBuilder) refineOver(ctx context.Context, rec *promptRecorder, queryStr string, textChunks []string) (string, error) {
	qa := b.textQA.PartialFormat(map[string]string{"query_str": queryStr})
	refine := b.refineTmpl.PartialFormat(map[string]string{"query_str": queryStr})

	var answer string
	started := false
	for _, chunk := range textChunks {
		pieces, err := b.fitChunk(qa, refine, chunk)
		if err != nil {
			return "", err
		}
		for _, piece := range pieces {
			if !started {
				answer, err = b.ask(ctx, rec, queryStr, piece)
				started = true
			} else {
				answer, err = b.refine(ctx, rec, queryStr, answer, piece)
			}
			if err != nil {
				return "", err
			}
		}
	}
	if !started {
		return b.ask(ctx, rec, queryStr, "")
	}
	return answer, nil
}

// fitChunk splits a chunk that exceeds the single-window budget of the
// larger of the two templates.
func (b *RefineBuilder) fitChunk(qa, refine prompts.BasePromptTemplate, chunk string) ([]string, error) {
	tmpl := biggestPrompt(b.sctx.PromptHelper.Tokenizer, qa, refine)
	splitter, err := b.sctx.PromptHelper.GetTextSplitterGivenPrompt(tmpl, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	if len(b.sctx.PromptHelper.Tokenizer.Encode(chunk)) <= splitter.ChunkSize {
		return []string{chunk}, nil
	}
	return splitter.SplitText(chunk), nil
}

func (b *RefineBuilder) ask(ctx context.Context, rec *promptRecorder, queryStr, contextStr string) (string, error) {
	completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.textQA, map[string]string{
		"query_str":   queryStr,
		"context_str": contextStr,
	})
	if err != nil {
		return "", fmt.Errorf("refine: initial answer failed: %w", err)
	}
	rec.record(fmt.Sprintf("qa_%d", len(rec.calls)), rendered)
	return completion, nil
}

func (b *RefineBuilder) refine(ctx context.Context, rec *promptRecorder, queryStr, existingAnswer, contextMsg string) (string, error) {
	completion, rendered, err := b.sctx.Predictor.Predict(ctx, b.refineTmpl, map[string]string{
		"query_str":       queryStr,
		"existing_answer": existingAnswer,
		"context_msg":     contextMsg,
	})
	if err != nil {
		return "", fmt.Errorf("refine: refinement failed: %w", err)
	}
	rec.record(fmt.Sprintf("refine_%d", len(rec.calls)), rendered)
	return completion, nil
}

var _ ResponseBuilder = (*RefineBuilder)(nil)
