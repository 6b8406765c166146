// Package textsplitter provides tokenizers and token-budget text
// splitting used by the prompt helper and the node readers.
package textsplitter

// TextSplitter is the interface for splitting text into chunks.
type TextSplitter interface {
	SplitText(text string) []string
}

// Tokenizer encodes text into a list of string tokens. Token counts are
// always measured through a Tokenizer, never estimated from characters.
type Tokenizer interface {
	Encode(text string) []string
}

// TokenCounter is the counting-only view of a tokenizer.
type TokenCounter interface {
	CountTokens(text string) int
}
