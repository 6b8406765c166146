package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ragsynth/go-ragsynth/schema"
)

// SimpleDirectoryReader loads every supported file under a directory.
// Plain text and markdown are read as-is; PDFs go through PDFReader.
// Files load in path order so repeated runs are deterministic.
type SimpleDirectoryReader struct {
	InputDir  string
	Recursive bool
	// Extensions filters which files load; defaults to .txt, .md, .pdf.
	Extensions []string
}

// DirectoryOption configures a SimpleDirectoryReader.
type DirectoryOption func(*SimpleDirectoryReader)

// WithRecursive descends into subdirectories.
func WithRecursive(recursive bool) DirectoryOption {
	return func(r *SimpleDirectoryReader) {
		r.Recursive = recursive
	}
}

// WithExtensions overrides the loaded file extensions.
func WithExtensions(exts ...string) DirectoryOption {
	return func(r *SimpleDirectoryReader) {
		r.Extensions = exts
	}
}

// NewSimpleDirectoryReader creates a reader over inputDir.
func NewSimpleDirectoryReader(inputDir string, opts ...DirectoryOption) (*SimpleDirectoryReader, error) {
	if inputDir == "" {
		return nil, fmt.Errorf("directory reader: input dir must not be empty")
	}

	r := &SimpleDirectoryReader{
		InputDir:   inputDir,
		Extensions: []string{".txt", ".md", ".pdf"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// LoadData loads all supported files under the directory.
func (r *SimpleDirectoryReader) LoadData(ctx context.Context) ([]schema.Document, error) {
	files, err := r.listFiles()
	if err != nil {
		return nil, NewReaderError(r.InputDir, "failed to list files", err)
	}
	if len(files) == 0 {
		return nil, NewReaderError(r.InputDir, "no supported files found", nil)
	}

	var docs []schema.Document
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileDocs, err := r.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

func (r *SimpleDirectoryReader) listFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(r.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != r.InputDir && !r.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if r.supported(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (r *SimpleDirectoryReader) supported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, want := range r.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

func (r *SimpleDirectoryReader) loadFile(ctx context.Context, path string) ([]schema.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFReader(path).LoadData(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewReaderError(path, "failed to read file", err)
	}

	doc := schema.NewDocument(string(data))
	doc.Metadata = map[string]interface{}{
		"file_name": filepath.Base(path),
		"file_type": strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}
	return []schema.Document{*doc}, nil
}

var _ Reader = (*SimpleDirectoryReader)(nil)
