package synthesizer

import (
	"fmt"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

// promptRecorder collects the rendered prompts of a synthesis run so they
// can be surfaced on the response's ExtraInfo.
type promptRecorder struct {
	calls []PromptCall
}

func (r *promptRecorder) record(key, prompt string) {
	r.calls = append(r.calls, PromptCall{Key: key, Prompt: prompt})
}

func (r *promptRecorder) extraInfo() map[string]interface{} {
	return map[string]interface{}{
		ExtraInfoPromptCalls: r.calls,
	}
}

// biggestPrompt returns the template whose empty rendering consumes the
// most tokens. Ties keep the earliest template.
func biggestPrompt(tokenizer textsplitter.Tokenizer, tmpls ...prompts.BasePromptTemplate) prompts.BasePromptTemplate {
	var best prompts.BasePromptTemplate
	bestTokens := -1
	for _, t := range tmpls {
		n := len(tokenizer.Encode(prompts.EmptyPromptText(t)))
		if n > bestTokens {
			best = t
			bestTokens = n
		}
	}
	return best
}

func validateServiceContext(sctx *service.Context) error {
	if sctx == nil {
		return fmt.Errorf("synthesizer: service context must not be nil")
	}
	return nil
}
