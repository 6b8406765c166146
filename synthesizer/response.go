package synthesizer

import "github.com/ragsynth/go-ragsynth/schema"

// ExtraInfoPromptCalls is the ExtraInfo key under which builders record
// the prompts sent to the predictor, in call order.
const ExtraInfoPromptCalls = "prompt_calls"

// PromptCall records a single rendered prompt sent to the predictor.
type PromptCall struct {
	Key    string
	Prompt string
}

// Response is the result of a synthesis run.
type Response struct {
	Response    string
	SourceNodes []schema.NodeWithScore
	ExtraInfo   map[string]interface{}
}

// String returns the answer text exactly as produced.
func (r *Response) String() string {
	return r.Response
}

// GetFormattedSources returns the source nodes as a display string.
func (r *Response) GetFormattedSources() string {
	out := ""
	for _, n := range r.SourceNodes {
		if out != "" {
			out += "\n\n"
		}
		out += "> Source (node " + n.Node.ID + "): " + n.Node.GetContent(schema.MetadataModeNone)
	}
	return out
}
