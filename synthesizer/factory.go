package synthesizer

import (
	"errors"
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
)

// ErrInvalidMode reports an unknown response mode.
var ErrInvalidMode = errors.New("unsupported response mode")

// BuilderOption tunes builder construction across modes.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	numChildren int
	separator   string
}

// NumChildren sets the tree-summarize fan-in. Ignored by other modes.
func NumChildren(n int) BuilderOption {
	return func(o *builderOptions) {
		o.numChildren = n
	}
}

// AccumulateSeparator sets the accumulate answer separator. Ignored by
// other modes.
func AccumulateSeparator(sep string) BuilderOption {
	return func(o *builderOptions) {
		o.separator = sep
	}
}

// GetResponseBuilder returns the builder for a response mode. Nil
// templates fall back to the package defaults; templates a mode does
// not use are ignored.
func GetResponseBuilder(
	mode ResponseMode,
	sctx *service.Context,
	textQA prompts.BasePromptTemplate,
	refineTmpl prompts.BasePromptTemplate,
	opts ...BuilderOption,
) (ResponseBuilder, error) {
	if err := validateServiceContext(sctx); err != nil {
		return nil, err
	}

	o := &builderOptions{
		numChildren: DefaultNumChildren,
		separator:   DefaultAccumulateSeparator,
	}
	for _, opt := range opts {
		opt(o)
	}

	switch mode {
	case ResponseModeRefine:
		return NewRefineBuilder(sctx, textQA, refineTmpl)
	case ResponseModeCompact:
		return NewCompactBuilder(sctx, textQA, refineTmpl)
	case ResponseModeTreeSummarize:
		return NewTreeSummarizeBuilder(sctx, textQA, WithNumChildren(o.numChildren))
	case ResponseModeGeneration:
		return NewGenerationBuilder(sctx, nil)
	case ResponseModeSimpleSummarize:
		return NewSimpleSummarizeBuilder(sctx, textQA)
	case ResponseModeAccumulate:
		return NewAccumulateBuilder(sctx, textQA, WithAccumulateSeparator(o.separator))
	case ResponseModeCompactAccumulate:
		return NewAccumulateBuilder(sctx, textQA, WithAccumulateSeparator(o.separator), WithCompactPacking())
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}
