// Package synthesizer builds answers to a query from retrieved text
// chunks. Each response mode trades call count against context reuse:
// refine walks chunks one window at a time, compact packs windows
// first, tree_summarize reduces bottom-up, generation skips the chunks
// entirely.
package synthesizer

import (
	"context"

	"github.com/ragsynth/go-ragsynth/schema"
)

// ResponseBuilder synthesizes a response to a query from text chunks.
type ResponseBuilder interface {
	// GetResponse answers queryStr using textChunks.
	GetResponse(ctx context.Context, queryStr string, textChunks []string) (*Response, error)
}

// Synthesize runs builder over the text content of nodes and attaches the
// nodes as sources on the returned response.
func Synthesize(ctx context.Context, builder ResponseBuilder, queryStr string, nodes []schema.NodeWithScore) (*Response, error) {
	chunks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		chunks = append(chunks, n.Node.GetContent(schema.MetadataModeLLM))
	}

	resp, err := builder.GetResponse(ctx, queryStr, chunks)
	if err != nil {
		return nil, err
	}
	resp.SourceNodes = nodes
	return resp, nil
}
