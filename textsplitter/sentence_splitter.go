package textsplitter

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter splits text on sentence boundaries and packs whole
// sentences into chunks under a token budget. Sentences larger than the
// budget are handed to a TokenTextSplitter fallback.
type SentenceSplitter struct {
	// ChunkSize is the maximum number of tokens per chunk.
	ChunkSize int
	// ChunkOverlap is the number of overlapping tokens between chunks.
	ChunkOverlap int
	// Tokenizer measures token counts.
	Tokenizer Tokenizer

	sentenceTokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceSplitter creates a sentence splitter with the embedded
// English sentence model.
func NewSentenceSplitter(chunkSize, chunkOverlap int, tokenizer Tokenizer) (*SentenceSplitter, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if tokenizer == nil {
		tokenizer = NewWhitespaceTokenizer()
	}

	st, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence model: %w", err)
	}

	return &SentenceSplitter{
		ChunkSize:         chunkSize,
		ChunkOverlap:      chunkOverlap,
		Tokenizer:         tokenizer,
		sentenceTokenizer: st,
	}, nil
}

// SplitText splits text into chunks of whole sentences.
func (s *SentenceSplitter) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var pieces []string
	for _, sent := range s.sentenceTokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(sent.Text); trimmed != "" {
			pieces = append(pieces, trimmed)
		}
	}
	if len(pieces) == 0 {
		pieces = []string{strings.TrimSpace(text)}
	}

	fallback := NewTokenTextSplitter(s.ChunkSize, s.ChunkOverlap, " ", s.Tokenizer)

	var chunks []string
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentTokens = 0
		}
	}

	for _, piece := range pieces {
		pieceTokens := len(s.Tokenizer.Encode(piece))
		if pieceTokens > s.ChunkSize {
			flush()
			chunks = append(chunks, fallback.SplitText(piece)...)
			continue
		}
		if currentTokens+pieceTokens > s.ChunkSize {
			flush()
		}
		current = append(current, piece)
		currentTokens += pieceTokens
	}
	flush()

	return chunks
}

var _ TextSplitter = (*SentenceSplitter)(nil)
