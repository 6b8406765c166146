package synthesizer

// ResponseMode selects the strategy used to synthesize a response from
// retrieved text chunks.
type ResponseMode string

const (
	// ResponseModeRefine answers with the first chunk and refines the
	// answer through every subsequent chunk.
	ResponseModeRefine ResponseMode = "refine"

	// ResponseModeCompact packs chunks into as few LLM windows as
	// possible before refining.
	ResponseModeCompact ResponseMode = "compact"

	// ResponseModeTreeSummarize bottom-up summarizes chunk groups until
	// a single summary remains.
	ResponseModeTreeSummarize ResponseMode = "tree_summarize"

	// ResponseModeGeneration ignores chunks and answers from the query
	// alone.
	ResponseModeGeneration ResponseMode = "generation"

	// ResponseModeSimpleSummarize joins every chunk into one window and
	// answers with a single call.
	ResponseModeSimpleSummarize ResponseMode = "simple_summarize"

	// ResponseModeAccumulate answers each chunk independently and joins
	// the answers.
	ResponseModeAccumulate ResponseMode = "accumulate"

	// ResponseModeCompactAccumulate packs chunks first, then accumulates.
	ResponseModeCompactAccumulate ResponseMode = "compact_accumulate"
)

// IsValid reports whether m names a known response mode.
func (m ResponseMode) IsValid() bool {
	switch m {
	case ResponseModeRefine, ResponseModeCompact, ResponseModeTreeSummarize,
		ResponseModeGeneration, ResponseModeSimpleSummarize,
		ResponseModeAccumulate, ResponseModeCompactAccumulate:
		return true
	}
	return false
}

func (m ResponseMode) String() string {
	return string(m)
}
