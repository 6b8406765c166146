// Package reader provides document loaders: local files, directories,
// and MongoDB collections.
package reader

import (
	"context"

	"github.com/ragsynth/go-ragsynth/schema"
)

// Reader loads documents from a source.
type Reader interface {
	// LoadData loads all documents from the reader's source.
	LoadData(ctx context.Context) ([]schema.Document, error)
}

// ReaderError wraps a loading failure with its source.
type ReaderError struct {
	Source  string
	Message string
	Err     error
}

func (e *ReaderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *ReaderError) Unwrap() error {
	return e.Err
}

// NewReaderError creates a ReaderError.
func NewReaderError(source, message string, err error) *ReaderError {
	return &ReaderError{Source: source, Message: message, Err: err}
}
