package textsplitter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// WhitespaceTokenizer tokenizes text by splitting on whitespace runs.
type WhitespaceTokenizer struct{}

func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

func (t *WhitespaceTokenizer) Encode(text string) []string {
	return strings.Fields(text)
}

func (t *WhitespaceTokenizer) CountTokens(text string) int {
	return len(strings.Fields(text))
}

// Common tiktoken encoding names.
const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// TikTokenTokenizer tokenizes text with a tiktoken encoding. Tokens are
// returned as stringified IDs; consumers only measure lengths.
type TikTokenTokenizer struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

// NewTikTokenTokenizer creates a tokenizer for the given encoding name,
// defaulting to cl100k_base.
func NewTikTokenTokenizer(encodingName string) (*TikTokenTokenizer, error) {
	if encodingName == "" {
		encodingName = EncodingCL100kBase
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encodingName, err)
	}
	return &TikTokenTokenizer{encoding: enc, encodingName: encodingName}, nil
}

// NewTikTokenTokenizerForModel creates a tokenizer for a model name.
func NewTikTokenTokenizerForModel(model string) (*TikTokenTokenizer, error) {
	if model == "" {
		return NewTikTokenTokenizer("")
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return &TikTokenTokenizer{encoding: enc, encodingName: model}, nil
}

func (t *TikTokenTokenizer) Encode(text string) []string {
	ids := t.encoding.Encode(text, nil, nil)
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = fmt.Sprintf("%d", id)
	}
	return tokens
}

func (t *TikTokenTokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// EncodingName returns the encoding or model name this tokenizer uses.
func (t *TikTokenTokenizer) EncodingName() string {
	return t.encodingName
}

var (
	defaultTokenizer     Tokenizer
	defaultTokenizerOnce sync.Once
	defaultTokenizerErr  error
)

// DefaultTokenizer returns a shared cl100k_base tiktoken tokenizer.
// It is safe for concurrent use.
func DefaultTokenizer() (Tokenizer, error) {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer, defaultTokenizerErr = NewTikTokenTokenizer(EncodingCL100kBase)
	})
	return defaultTokenizer, defaultTokenizerErr
}

var (
	_ Tokenizer    = (*WhitespaceTokenizer)(nil)
	_ TokenCounter = (*WhitespaceTokenizer)(nil)
	_ Tokenizer    = (*TikTokenTokenizer)(nil)
	_ TokenCounter = (*TikTokenTokenizer)(nil)
)
