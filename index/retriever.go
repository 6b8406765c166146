// Package index selects which stored documents feed response
// synthesis. Retrieval here is lexical: either every document in
// stored order, or the documents sharing the most keywords with the
// query. No embeddings are involved.
package index

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ragsynth/go-ragsynth/schema"
)

// Retriever picks nodes for a query out of the stored documents.
type Retriever interface {
	// Retrieve returns the nodes to synthesize over, in rank order.
	Retrieve(queryStr string, docs []schema.Document) []schema.NodeWithScore
}

// ListRetriever returns every document in stored order.
type ListRetriever struct{}

// NewListRetriever creates a ListRetriever.
func NewListRetriever() *ListRetriever {
	return &ListRetriever{}
}

func (r *ListRetriever) Retrieve(queryStr string, docs []schema.Document) []schema.NodeWithScore {
	nodes := make([]schema.NodeWithScore, 0, len(docs))
	for _, doc := range docs {
		nodes = append(nodes, schema.NodeWithScore{Node: *doc.ToNode(), Score: 1})
	}
	return nodes
}

var _ Retriever = (*ListRetriever)(nil)

// DefaultKeywordTopK caps how many documents keyword retrieval returns.
const DefaultKeywordTopK = 5

// KeywordRetriever ranks documents by how many query keywords they
// contain. Documents sharing no keywords with the query are dropped;
// ties keep stored order.
type KeywordRetriever struct {
	TopK int
}

// NewKeywordRetriever creates a KeywordRetriever returning at most topK
// documents. A non-positive topK falls back to the default.
func NewKeywordRetriever(topK int) *KeywordRetriever {
	if topK <= 0 {
		topK = DefaultKeywordTopK
	}
	return &KeywordRetriever{TopK: topK}
}

func (r *KeywordRetriever) Retrieve(queryStr string, docs []schema.Document) []schema.NodeWithScore {
	queryKeywords := ExtractKeywords(queryStr)
	if len(queryKeywords) == 0 {
		return nil
	}

	var nodes []schema.NodeWithScore
	for _, doc := range docs {
		docKeywords := ExtractKeywords(doc.Text)
		overlap := 0
		for kw := range queryKeywords {
			if docKeywords[kw] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		nodes = append(nodes, schema.NodeWithScore{Node: *doc.ToNode(), Score: float64(overlap)})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Score > nodes[j].Score
	})
	if len(nodes) > r.TopK {
		nodes = nodes[:r.TopK]
	}
	return nodes
}

var _ Retriever = (*KeywordRetriever)(nil)

// stopwords are dropped during keyword extraction.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"how": true, "in": true, "is": true, "it": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "this": true,
	"to": true, "was": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "why": true, "with": true,
}

// ExtractKeywords lowercases text and returns its alphanumeric words,
// minus stopwords.
func ExtractKeywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	keywords := make(map[string]bool, len(words))
	for _, w := range words {
		if !stopwords[w] {
			keywords[w] = true
		}
	}
	return keywords
}
