package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ragsynth/go-ragsynth/reader"
	"github.com/ragsynth/go-ragsynth/schema"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

var addCmd = &cobra.Command{
	Use:   "add <file|dir>...",
	Short: "Read documents and persist them in the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(rootDir)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()

		var docs []schema.Document
		for _, path := range args {
			loaded, err := loadPath(ctx, path)
			if err != nil {
				return err
			}
			docs = append(docs, loaded...)
		}

		splitter, err := textsplitter.NewSentenceSplitter(
			textsplitter.DefaultChunkSize, textsplitter.DefaultChunkOverlap, nil)
		if err != nil {
			return err
		}
		docs = splitDocuments(docs, splitter)

		if err := a.docs.AddDocuments(ctx, docs); err != nil {
			return err
		}

		a.logger.Info("documents added", "count", len(docs), "store", a.cfg.StoreType)
		fmt.Fprintf(cmd.OutOrStdout(), "added %d document(s)\n", len(docs))
		return nil
	},
}

// splitDocuments cuts each document into sentence-bounded chunks, one
// document per chunk. Chunk documents keep the source metadata plus
// their origin and position, and stay in reading order.
func splitDocuments(docs []schema.Document, splitter textsplitter.TextSplitter) []schema.Document {
	var out []schema.Document
	for _, doc := range docs {
		chunks := splitter.SplitText(doc.Text)
		if len(chunks) <= 1 {
			out = append(out, doc)
			continue
		}
		for i, chunk := range chunks {
			chunkDoc := schema.NewDocument(chunk)
			for k, v := range doc.Metadata {
				chunkDoc.Metadata[k] = v
			}
			chunkDoc.Metadata["source_doc_id"] = doc.ID
			chunkDoc.Metadata["chunk_index"] = i
			out = append(out, *chunkDoc)
		}
	}
	return out
}

// loadPath loads a single file or a whole directory tree.
func loadPath(ctx context.Context, path string) ([]schema.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if info.IsDir() {
		r, err := reader.NewSimpleDirectoryReader(path, reader.WithRecursive(true))
		if err != nil {
			return nil, err
		}
		return r.LoadData(ctx)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return reader.NewPDFReader(path).LoadData(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	doc := schema.NewDocument(string(data))
	doc.Metadata["file_name"] = filepath.Base(path)
	return []schema.Document{*doc}, nil
}
