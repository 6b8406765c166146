package textsplitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separatorTokenizer splits on a single space only, matching how the
// budget tests measure tokens.
type separatorTokenizer struct{}

func (separatorTokenizer) Encode(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

func TestWhitespaceTokenizer(t *testing.T) {
	tok := NewWhitespaceTokenizer()
	assert.Equal(t, []string{"a", "b", "c"}, tok.Encode("a  b\nc"))
	assert.Equal(t, 0, tok.CountTokens(""))
	assert.Equal(t, 3, tok.CountTokens("a b c"))
}

func TestSplitTextRoundTrip(t *testing.T) {
	splitter := NewTokenTextSplitter(4, 0, "\n\n", separatorTokenizer{})

	text := "This\n\nis\n\na\n\ntest"
	chunks := splitter.SplitText(text)
	assert.Equal(t, text, strings.Join(chunks, "\n\n"))
}

func TestSplitTextRoundTripWithEmptyPieces(t *testing.T) {
	splitter := NewTokenTextSplitter(100, 0, "\n\n", separatorTokenizer{})

	text := "a\n\n\n\nb"
	chunks := splitter.SplitText(text)
	assert.Equal(t, text, strings.Join(chunks, "\n\n"))
}

func TestSplitTextBudget(t *testing.T) {
	tok := NewWhitespaceTokenizer()
	splitter := NewTokenTextSplitter(3, 0, " ", tok)

	chunks := splitter.SplitText("one two three four five")
	assert.Equal(t, []string{"one two three", "four five"}, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, tok.CountTokens(chunk), 3)
	}
}

func TestSplitTextDeterministic(t *testing.T) {
	splitter := NewTokenTextSplitter(3, 1, " ", NewWhitespaceTokenizer())
	text := "a b c d e f g h"
	first := splitter.SplitText(text)
	second := splitter.SplitText(text)
	assert.Equal(t, first, second)
}

func TestSplitTextMeasuresJoinedChunk(t *testing.T) {
	// With a space-only tokenizer, pieces joined by "\n\n" collapse to a
	// single token, so they all pack into one chunk.
	splitter := NewTokenTextSplitter(4, 0, "\n\n", separatorTokenizer{})

	text := "This\n\nis\n\na\n\nbar\n\nThis\n\nis\n\na\n\ntest"
	chunks := splitter.SplitText(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitTextOversizedFallback(t *testing.T) {
	// No separator present in the text: token-count slicing applies.
	splitter := NewTokenTextSplitter(2, 0, "\n\n", NewWhitespaceTokenizer())

	chunks := splitter.SplitText("one two three four")
	assert.Greater(t, len(chunks), 1)
}

func TestSplitTextEmpty(t *testing.T) {
	splitter := NewTokenTextSplitter(4, 0, "\n\n", NewWhitespaceTokenizer())
	assert.Empty(t, splitter.SplitText(""))
}

func TestTruncateText(t *testing.T) {
	splitter := NewTokenTextSplitter(2, 0, " ", NewWhitespaceTokenizer())
	assert.Equal(t, "one two", splitter.TruncateText("one two three four"))
}

func TestSplitTextOverlap(t *testing.T) {
	splitter := NewTokenTextSplitter(2, 1, " ", NewWhitespaceTokenizer())

	chunks := splitter.SplitText("a b c d")
	require.NotEmpty(t, chunks)
	// Consecutive chunks repeat the trailing token of the previous one.
	assert.Equal(t, "a b", chunks[0])
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasPrefix(chunks[1], "b"))
}

func TestSentenceSplitter(t *testing.T) {
	splitter, err := NewSentenceSplitter(8, 0, NewWhitespaceTokenizer())
	require.NoError(t, err)

	text := "Hello world. This is a test. This is another test. This is a test v2."
	chunks := splitter.SplitText(text)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, NewWhitespaceTokenizer().CountTokens(chunk), 8)
	}
	// Sentence boundaries are respected: every chunk ends with a period.
	for _, chunk := range chunks {
		assert.True(t, strings.HasSuffix(chunk, "."), chunk)
	}
}

func TestSentenceSplitterEmpty(t *testing.T) {
	splitter, err := NewSentenceSplitter(8, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, splitter.SplitText("   "))
}
