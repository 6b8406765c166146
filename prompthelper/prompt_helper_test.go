package prompthelper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsynth/go-ragsynth/prompts"
)

// spaceTokenizer splits on single spaces; the empty string has no tokens.
type spaceTokenizer struct{}

func (spaceTokenizer) Encode(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

func TestGetChunkSizeGivenPrompt(t *testing.T) {
	ph, err := NewPromptHelper(11, 0, 0, WithTokenizer(spaceTokenizer{}), WithSeparator("\n\n"))
	require.NoError(t, err)

	// (11 - 2 prompt tokens - 0 output) / 1 chunk - 1 padding.
	size, err := ph.GetChunkSizeGivenPrompt("What is?", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, size)

	// Two chunks split the remaining budget.
	size, err = ph.GetChunkSizeGivenPrompt("What is?", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestGetChunkSizeLimitCaps(t *testing.T) {
	ph, err := NewPromptHelper(11, 0, 0,
		WithTokenizer(spaceTokenizer{}),
		WithSeparator("\n\n"),
		WithChunkSizeLimit(4),
	)
	require.NoError(t, err)

	size, err := ph.GetChunkSizeGivenPrompt("", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, size)
}

func TestGetChunkSizeBudgetProperty(t *testing.T) {
	// tokens(prompt) + num_output + num_chunks*c <= max_input_size, and
	// c is maximal up to padding per chunk.
	for _, tc := range []struct {
		maxInput, numOutput, numChunks, padding int
		prompt                                  string
	}{
		{100, 10, 1, 1, "a b c"},
		{100, 10, 3, 1, "a b c"},
		{50, 0, 7, 2, ""},
		{12, 0, 2, 1, "What is?"},
	} {
		ph, err := NewPromptHelper(tc.maxInput, tc.numOutput, 0, WithTokenizer(spaceTokenizer{}))
		require.NoError(t, err)

		c, err := ph.GetChunkSizeGivenPrompt(tc.prompt, tc.numChunks, tc.padding)
		require.NoError(t, err)

		promptTokens := len(spaceTokenizer{}.Encode(tc.prompt))
		assert.LessOrEqual(t, promptTokens+tc.numOutput+tc.numChunks*c, tc.maxInput)
		// One more token per chunk (beyond padding) would not fit.
		assert.Greater(t, promptTokens+tc.numOutput+tc.numChunks*(c+tc.padding+1), tc.maxInput)
	}
}

func TestGetChunkSizeBudgetExceeded(t *testing.T) {
	ph, err := NewPromptHelper(4, 2, 0, WithTokenizer(spaceTokenizer{}))
	require.NoError(t, err)

	_, err = ph.GetChunkSizeGivenPrompt("one two three", 1, 1)
	require.Error(t, err)

	var budgetErr *BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	assert.Equal(t, 4, budgetErr.MaxInputSize)
	assert.Equal(t, 3, budgetErr.PromptTokens)
}

func TestNewPromptHelperValidation(t *testing.T) {
	_, err := NewPromptHelper(0, 0, 0)
	assert.Error(t, err)
	_, err = NewPromptHelper(10, -1, 0)
	assert.Error(t, err)
	_, err = NewPromptHelper(10, 0, -1)
	assert.Error(t, err)
}

func TestCompactTextChunksPacksWindow(t *testing.T) {
	ph, err := NewPromptHelper(11, 0, 0,
		WithTokenizer(spaceTokenizer{}),
		WithSeparator("\n\n"),
		WithChunkSizeLimit(4),
	)
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}{query_str}", prompts.PromptTypeQuestionAnswer).
		PartialFormat(map[string]string{"query_str": "What is?"})

	chunks, err := ph.CompactTextChunks(tmpl, []string{
		"This\n\nis\n\na\n\nbar",
		"This\n\nis\n\na\n\ntest",
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "This\n\nis\n\na\n\nbar\n\nThis\n\nis\n\na\n\ntest", chunks[0])
}

func TestCompactTextChunksDropsEmpty(t *testing.T) {
	ph, err := NewPromptHelper(100, 0, 0, WithTokenizer(spaceTokenizer{}), WithSeparator("\n\n"))
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}", prompts.PromptTypeQuestionAnswer)
	chunks, err := ph.CompactTextChunks(tmpl, []string{"a", "  ", "b"})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a\n\nb", chunks[0])
}

func TestGetTextFromChunksRoundTrip(t *testing.T) {
	ph, err := NewPromptHelper(100, 0, 0, WithTokenizer(spaceTokenizer{}), WithSeparator("\n\n"))
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}", prompts.PromptTypeQuestionAnswer)
	text, err := ph.GetTextFromChunks(tmpl, []string{"Hello world.", "This is a test."})
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\n\nThis is a test.", text)
}

func TestGetTextFromChunksSplitsOversized(t *testing.T) {
	ph, err := NewPromptHelper(8, 0, 0, WithTokenizer(spaceTokenizer{}), WithSeparator("\n\n"))
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}", prompts.PromptTypeQuestionAnswer)
	// Budget per chunk: 8/1 - 1 = 7 tokens; the chunk has 8.
	text, err := ph.GetTextFromChunks(tmpl, []string{"a\n\nb\n\nc d e f g h i j"})
	require.NoError(t, err)
	for _, part := range strings.Split(text, "\n\n") {
		assert.LessOrEqual(t, len(spaceTokenizer{}.Encode(part)), 7)
	}
}

func TestChunkOverlapRatio(t *testing.T) {
	ph, err := NewPromptHelper(100, 0, 0,
		WithTokenizer(spaceTokenizer{}),
		WithChunkOverlapRatio(0.1),
	)
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}", prompts.PromptTypeQuestionAnswer)
	splitter, err := ph.GetTextSplitterGivenPrompt(tmpl, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 99, splitter.ChunkSize)
	assert.Equal(t, 9, splitter.ChunkOverlap)
}

func TestDeterministicBoundaries(t *testing.T) {
	ph, err := NewPromptHelper(12, 0, 2, WithTokenizer(spaceTokenizer{}), WithSeparator("\n\n"))
	require.NoError(t, err)

	tmpl := prompts.NewPromptTemplate("{context_str}{query_str}", prompts.PromptTypeQuestionAnswer)
	chunks := []string{"This\n\nis\n\na\n\nbar", "This\n\nis\n\na\n\ntest"}

	first, err := ph.CompactTextChunks(tmpl, chunks)
	require.NoError(t, err)
	second, err := ph.CompactTextChunks(tmpl, chunks)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
