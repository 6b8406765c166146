package textsplitter

import (
	"strings"
)

const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 20
	DefaultSeparator    = "\n\n"
)

// TokenTextSplitter splits text into chunks bounded by a token budget.
// The separator is the preferred split boundary; a piece with no
// separator that still exceeds the budget falls back to token-count
// slicing. Splitting is deterministic: identical input and config
// always produce identical chunk boundaries.
type TokenTextSplitter struct {
	// ChunkSize is the maximum number of tokens per chunk.
	ChunkSize int
	// ChunkOverlap is the number of tokens repeated between chunks.
	ChunkOverlap int
	// Separator splits text into pieces and re-joins pieces into chunks.
	Separator string
	// Tokenizer measures token counts.
	Tokenizer Tokenizer
}

// NewTokenTextSplitter creates a splitter. Zero/empty arguments fall
// back to defaults; a nil tokenizer falls back to whitespace tokens.
func NewTokenTextSplitter(chunkSize, chunkOverlap int, separator string, tokenizer Tokenizer) *TokenTextSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	if tokenizer == nil {
		tokenizer = NewWhitespaceTokenizer()
	}
	return &TokenTextSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separator:    separator,
		Tokenizer:    tokenizer,
	}
}

// SplitText splits text into chunks within the token budget. Empty
// pieces are kept so that joining the chunks with the separator
// reproduces the original text when no overlap is configured.
func (s *TokenTextSplitter) SplitText(text string) []string {
	if text == "" {
		return []string{}
	}
	return s.mergeSplits(strings.Split(text, s.Separator))
}

func (s *TokenTextSplitter) mergeSplits(splits []string) []string {
	var chunks []string
	var current []string
	currentTokens := 0
	sepTokens := s.tokenLen(s.Separator)

	for _, split := range splits {
		splitTokens := s.tokenLen(split)

		if splitTokens > s.ChunkSize {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, s.Separator))
				current = nil
				currentTokens = 0
			}
			chunks = append(chunks, s.sliceByTokens(split)...)
			continue
		}

		newTokens := currentTokens + splitTokens
		if len(current) > 0 {
			newTokens += sepTokens
		}
		if newTokens > s.ChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, s.Separator))
			current, currentTokens = s.overlapTail(current)
		}

		current = append(current, split)
		// The running total is measured on the joined chunk, not summed
		// per piece: a tokenizer may merge text across piece boundaries.
		currentTokens = s.tokenLen(strings.Join(current, s.Separator))
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, s.Separator))
	}
	return chunks
}

// sliceByTokens cuts a separator-free piece into windows of ChunkSize
// tokens, stepping ChunkSize-ChunkOverlap tokens. Window boundaries are
// mapped back to the text proportionally to token position.
func (s *TokenTextSplitter) sliceByTokens(text string) []string {
	total := len(s.Tokenizer.Encode(text))
	if total == 0 {
		return nil
	}

	step := s.ChunkSize - s.ChunkOverlap
	if step <= 0 {
		step = s.ChunkSize
	}

	var chunks []string
	for start := 0; start < total; start += step {
		end := start + s.ChunkSize
		if end > total {
			end = total
		}

		startChar := start * len(text) / total
		endChar := end * len(text) / total
		if chunk := text[startChar:endChar]; chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= total {
			break
		}
	}
	return chunks
}

// overlapTail returns the trailing pieces of a flushed chunk that fit
// within ChunkOverlap tokens, to seed the next chunk.
func (s *TokenTextSplitter) overlapTail(chunk []string) ([]string, int) {
	if s.ChunkOverlap <= 0 {
		return nil, 0
	}

	var tail []string
	for i := len(chunk) - 1; i >= 0; i-- {
		candidate := append([]string{chunk[i]}, tail...)
		tokens := s.tokenLen(strings.Join(candidate, s.Separator))
		if tokens > s.ChunkOverlap {
			break
		}
		tail = candidate
	}
	return tail, s.tokenLen(strings.Join(tail, s.Separator))
}

// TruncateText returns the first chunk of text under the budget.
func (s *TokenTextSplitter) TruncateText(text string) string {
	chunks := s.SplitText(text)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0]
}

func (s *TokenTextSplitter) tokenLen(text string) int {
	return len(s.Tokenizer.Encode(text))
}

var _ TextSplitter = (*TokenTextSplitter)(nil)
