// Package prompthelper computes how much chunk text fits a model's
// context window once a prompt template and the output reservation are
// accounted for, and splits or repacks chunks to that budget.
package prompthelper

import (
	"fmt"
	"strings"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

const (
	// DefaultPadding is the per-chunk safety margin in tokens.
	DefaultPadding = 1
	// DefaultSeparator joins sub-chunks back together.
	DefaultSeparator = "\n\n"
)

// BudgetExceededError reports that no chunk of positive size fits the
// window under the given template, padding, and output reservation.
type BudgetExceededError struct {
	MaxInputSize int
	PromptTokens int
	NumOutput    int
	NumChunks    int
	Padding      int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf(
		"prompt budget exceeded: max_input_size=%d prompt_tokens=%d num_output=%d num_chunks=%d padding=%d leaves no room for chunk text",
		e.MaxInputSize, e.PromptTokens, e.NumOutput, e.NumChunks, e.Padding,
	)
}

// PromptHelper fits text chunks into a model context window. It is
// immutable after construction and safe to share across queries.
type PromptHelper struct {
	// MaxInputSize is the model's context window in tokens.
	MaxInputSize int
	// NumOutput is the token reservation for the completion.
	NumOutput int
	// MaxChunkOverlap is the absolute overlap budget in tokens. When
	// zero, ChunkOverlapRatio applies instead.
	MaxChunkOverlap int
	// ChunkOverlapRatio expresses overlap as a fraction of chunk size.
	ChunkOverlapRatio float64
	// ChunkSizeLimit caps the computed chunk size when positive.
	ChunkSizeLimit int
	// Separator joins sub-chunks, "\n\n" by default.
	Separator string
	// Tokenizer measures all token counts.
	Tokenizer textsplitter.Tokenizer
}

// Option configures a PromptHelper.
type Option func(*PromptHelper)

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(tok textsplitter.Tokenizer) Option {
	return func(ph *PromptHelper) {
		ph.Tokenizer = tok
	}
}

// WithSeparator sets the sub-chunk join separator.
func WithSeparator(sep string) Option {
	return func(ph *PromptHelper) {
		ph.Separator = sep
	}
}

// WithChunkSizeLimit caps the computed chunk size.
func WithChunkSizeLimit(limit int) Option {
	return func(ph *PromptHelper) {
		ph.ChunkSizeLimit = limit
	}
}

// WithChunkOverlapRatio expresses chunk overlap as a ratio of the
// computed chunk size. Only consulted when MaxChunkOverlap is zero.
func WithChunkOverlapRatio(ratio float64) Option {
	return func(ph *PromptHelper) {
		ph.ChunkOverlapRatio = ratio
	}
}

// NewPromptHelper creates a PromptHelper.
func NewPromptHelper(maxInputSize, numOutput, maxChunkOverlap int, opts ...Option) (*PromptHelper, error) {
	if maxInputSize <= 0 {
		return nil, fmt.Errorf("max_input_size must be positive, got %d", maxInputSize)
	}
	if numOutput < 0 {
		return nil, fmt.Errorf("num_output must not be negative, got %d", numOutput)
	}
	if maxChunkOverlap < 0 {
		return nil, fmt.Errorf("max_chunk_overlap must not be negative, got %d", maxChunkOverlap)
	}

	ph := &PromptHelper{
		MaxInputSize:    maxInputSize,
		NumOutput:       numOutput,
		MaxChunkOverlap: maxChunkOverlap,
		Separator:       DefaultSeparator,
		Tokenizer:       textsplitter.NewWhitespaceTokenizer(),
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph, nil
}

// GetChunkSizeGivenPrompt returns the per-chunk token budget so that
// numChunks chunks, the rendered prompt, and the output reservation all
// fit within MaxInputSize, minus padding tokens per chunk. It returns a
// BudgetExceededError instead of clamping when nothing fits.
func (ph *PromptHelper) GetChunkSizeGivenPrompt(promptText string, numChunks, padding int) (int, error) {
	if numChunks <= 0 {
		return 0, fmt.Errorf("num_chunks must be positive, got %d", numChunks)
	}

	promptTokens := len(ph.Tokenizer.Encode(promptText))
	available := ph.MaxInputSize - promptTokens - ph.NumOutput
	chunkSize := available/numChunks - padding
	if ph.ChunkSizeLimit > 0 && chunkSize > ph.ChunkSizeLimit {
		chunkSize = ph.ChunkSizeLimit
	}
	if chunkSize <= 0 {
		return 0, &BudgetExceededError{
			MaxInputSize: ph.MaxInputSize,
			PromptTokens: promptTokens,
			NumOutput:    ph.NumOutput,
			NumChunks:    numChunks,
			Padding:      padding,
		}
	}
	return chunkSize, nil
}

// GetTextSplitterGivenPrompt builds a token splitter budgeted for
// numChunks chunks alongside the rendered template.
func (ph *PromptHelper) GetTextSplitterGivenPrompt(tmpl prompts.BasePromptTemplate, numChunks, padding int) (*textsplitter.TokenTextSplitter, error) {
	chunkSize, err := ph.GetChunkSizeGivenPrompt(prompts.EmptyPromptText(tmpl), numChunks, padding)
	if err != nil {
		return nil, err
	}
	return textsplitter.NewTokenTextSplitter(
		chunkSize,
		ph.chunkOverlap(chunkSize, numChunks),
		ph.Separator,
		ph.Tokenizer,
	), nil
}

// CompactTextChunks joins chunks with the separator and re-splits them
// so each resulting chunk packs a full context window for the template.
func (ph *PromptHelper) CompactTextChunks(tmpl prompts.BasePromptTemplate, chunks []string) ([]string, error) {
	var kept []string
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			kept = append(kept, chunk)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	splitter, err := ph.GetTextSplitterGivenPrompt(tmpl, 1, DefaultPadding)
	if err != nil {
		return nil, err
	}
	return splitter.SplitText(strings.Join(kept, ph.Separator)), nil
}

// GetTextFromChunks splits every chunk that exceeds the per-chunk
// budget for the template and joins the results with the separator.
func (ph *PromptHelper) GetTextFromChunks(tmpl prompts.BasePromptTemplate, chunks []string) (string, error) {
	if len(chunks) == 0 {
		return "", nil
	}

	splitter, err := ph.GetTextSplitterGivenPrompt(tmpl, len(chunks), DefaultPadding)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, chunk := range chunks {
		if len(ph.Tokenizer.Encode(chunk)) > splitter.ChunkSize {
			parts = append(parts, splitter.SplitText(chunk)...)
		} else {
			parts = append(parts, chunk)
		}
	}
	return strings.Join(parts, ph.Separator), nil
}

func (ph *PromptHelper) chunkOverlap(chunkSize, numChunks int) int {
	if ph.MaxChunkOverlap > 0 {
		return ph.MaxChunkOverlap / numChunks
	}
	if ph.ChunkOverlapRatio > 0 {
		return int(ph.ChunkOverlapRatio * float64(chunkSize))
	}
	return 0
}
