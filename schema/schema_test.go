package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextNode(t *testing.T) {
	node := NewTextNode("Hello world.")
	assert.NotEmpty(t, node.ID)
	assert.Equal(t, "Hello world.", node.Text)
}

func TestGetContentModes(t *testing.T) {
	node := NewTextNode("Body text.")
	node.Metadata["source"] = "a.txt"
	node.Metadata["page"] = 3
	node.ExcludedLLMMetadataKeys = []string{"page"}

	assert.Equal(t, "Body text.", node.GetContent(MetadataModeNone))
	assert.Equal(t, "source: a.txt\n\nBody text.", node.GetContent(MetadataModeLLM))
	assert.Equal(t, "page: 3\nsource: a.txt\n\nBody text.", node.GetContent(MetadataModeAll))
}

func TestGetContentNoMetadata(t *testing.T) {
	node := NewTextNode("Plain.")
	assert.Equal(t, "Plain.", node.GetContent(MetadataModeAll))
}

func TestDocumentToNode(t *testing.T) {
	doc := NewDocument("doc text")
	doc.Metadata["collection"] = "test"

	node := doc.ToNode()
	assert.Equal(t, doc.ID, node.ID)
	assert.Equal(t, "doc text", node.Text)
	assert.Equal(t, "test", node.Metadata["collection"])
}
