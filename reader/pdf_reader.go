package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ragsynth/go-ragsynth/schema"
)

// PDFReader extracts text from PDF files, one document per file or one
// per page when SplitByPage is set.
type PDFReader struct {
	InputFiles  []string
	SplitByPage bool
}

// NewPDFReader creates a PDFReader for the given files.
func NewPDFReader(inputFiles ...string) *PDFReader {
	return &PDFReader{InputFiles: inputFiles}
}

// WithSplitByPage makes each page its own document.
func (r *PDFReader) WithSplitByPage(split bool) *PDFReader {
	r.SplitByPage = split
	return r
}

// LoadData extracts text from every input file.
func (r *PDFReader) LoadData(ctx context.Context) ([]schema.Document, error) {
	if len(r.InputFiles) == 0 {
		return nil, fmt.Errorf("pdf reader: no input files")
	}

	var docs []schema.Document
	for _, file := range r.InputFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileDocs, err := r.loadFile(file)
		if err != nil {
			return nil, NewReaderError(file, "failed to load PDF", err)
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

func (r *PDFReader) loadFile(filePath string) ([]schema.Document, error) {
	f, pdfReader, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	var pages []string
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no text content found")
	}

	meta := func(pageNum int) map[string]interface{} {
		m := map[string]interface{}{
			"file_name":   filepath.Base(filePath),
			"file_type":   "pdf",
			"total_pages": numPages,
		}
		if pageNum > 0 {
			m["page_number"] = pageNum
		}
		return m
	}

	if r.SplitByPage {
		docs := make([]schema.Document, 0, len(pages))
		for i, text := range pages {
			doc := schema.NewDocument(text)
			doc.Metadata = meta(i + 1)
			docs = append(docs, *doc)
		}
		return docs, nil
	}

	doc := schema.NewDocument(strings.Join(pages, "\n\n"))
	doc.Metadata = meta(0)
	return []schema.Document{*doc}, nil
}

var _ Reader = (*PDFReader)(nil)
