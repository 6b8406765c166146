// Package schema defines the document and node types shared across the
// toolkit: documents produced by readers, nodes consumed by synthesis,
// and the metadata visibility modes used when rendering node content.
package schema

import (
	"strings"

	"github.com/google/uuid"
)

// MetadataMode controls which metadata is included when rendering node
// content for a consumer.
type MetadataMode string

const (
	// MetadataModeAll includes all metadata.
	MetadataModeAll MetadataMode = "all"
	// MetadataModeLLM includes metadata visible to the language model.
	MetadataModeLLM MetadataMode = "llm"
	// MetadataModeNone excludes all metadata.
	MetadataModeNone MetadataMode = "none"
)

const (
	metadataSeparator = "\n"
	metadataKVFormat  = ": "
)

// Node is a chunk of text content with provenance metadata. Nodes are
// ordered within the sequence they were retrieved in; that order may
// carry meaning and is preserved by every downstream component.
type Node struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	// ExcludedLLMMetadataKeys are metadata keys hidden from the LLM.
	ExcludedLLMMetadataKeys []string `json:"excluded_llm_metadata_keys,omitempty"`
}

// NewTextNode creates a node with a generated ID.
func NewTextNode(text string) *Node {
	return &Node{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: make(map[string]interface{}),
	}
}

// GetContent returns the node text, prefixed with metadata according to
// the given mode.
func (n *Node) GetContent(mode MetadataMode) string {
	metadataStr := n.GetMetadataStr(mode)
	if metadataStr == "" {
		return n.Text
	}
	return metadataStr + "\n\n" + n.Text
}

// GetMetadataStr renders the node metadata for the given mode.
func (n *Node) GetMetadataStr(mode MetadataMode) string {
	if mode == MetadataModeNone || len(n.Metadata) == 0 {
		return ""
	}

	excluded := make(map[string]bool)
	if mode == MetadataModeLLM {
		for _, key := range n.ExcludedLLMMetadataKeys {
			excluded[key] = true
		}
	}

	keys := make([]string, 0, len(n.Metadata))
	for key := range n.Metadata {
		if !excluded[key] {
			keys = append(keys, key)
		}
	}
	sortStrings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+metadataKVFormat+toString(n.Metadata[key]))
	}
	return strings.Join(parts, metadataSeparator)
}

// NodeWithScore pairs a node with its retrieval score.
type NodeWithScore struct {
	Node  Node    `json:"node"`
	Score float64 `json:"score"`
}

// Document is a raw unit of source content produced by a reader.
type Document struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewDocument creates a document with a generated ID.
func NewDocument(text string) *Document {
	return &Document{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: make(map[string]interface{}),
	}
}

// ToNode converts the document into a node, keeping its ID and metadata.
func (d *Document) ToNode() *Node {
	metadata := d.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Node{
		ID:       d.ID,
		Text:     d.Text,
		Metadata: metadata,
	}
}
