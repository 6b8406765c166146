// Package docstore persists documents on top of a key-value store.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ragsynth/go-ragsynth/schema"
	"github.com/ragsynth/go-ragsynth/storage/kvstore"
)

// ErrDocumentNotFound reports a lookup for an unknown document ID.
var ErrDocumentNotFound = errors.New("document not found")

const (
	documentCollection = "documents"
	metadataCollection = "docstore_meta"
	orderKey           = "doc_order"
)

// DocumentStore stores documents by ID in a key-value store.
type DocumentStore struct {
	kv kvstore.KVStore
}

// NewDocumentStore creates a DocumentStore over kv.
func NewDocumentStore(kv kvstore.KVStore) (*DocumentStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("docstore: kv store must not be nil")
	}
	return &DocumentStore{kv: kv}, nil
}

// AddDocuments stores docs, overwriting existing IDs. Insertion order
// is persisted so loads replay documents in the order they were added.
func (s *DocumentStore) AddDocuments(ctx context.Context, docs []schema.Document) error {
	order, err := s.loadOrder(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(order))
	for _, id := range order {
		known[id] = true
	}

	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("docstore: document has no ID")
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("docstore: failed to encode document %s: %w", doc.ID, err)
		}
		if err := s.kv.Put(ctx, documentCollection, doc.ID, raw); err != nil {
			return fmt.Errorf("docstore: failed to store document %s: %w", doc.ID, err)
		}
		if !known[doc.ID] {
			order = append(order, doc.ID)
			known[doc.ID] = true
		}
	}
	return s.saveOrder(ctx, order)
}

// GetDocument returns the document with the given ID.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*schema.Document, error) {
	raw, found, err := s.kv.Get(ctx, documentCollection, id)
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to load document %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("docstore: %w: %s", ErrDocumentNotFound, id)
	}

	var doc schema.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: failed to decode document %s: %w", id, err)
	}
	return &doc, nil
}

// GetAllDocuments returns every stored document in insertion order.
// Documents may carry reading order, so loads must replay them as they
// were added, never re-sorted.
func (s *DocumentStore) GetAllDocuments(ctx context.Context) ([]schema.Document, error) {
	all, err := s.kv.GetAll(ctx, documentCollection)
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to load documents: %w", err)
	}

	order, err := s.loadOrder(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(all))
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := all[id]; ok {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	// Documents written without an order entry come last, by ID.
	var stragglers []string
	for id := range all {
		if !seen[id] {
			stragglers = append(stragglers, id)
		}
	}
	sort.Strings(stragglers)
	ids = append(ids, stragglers...)

	docs := make([]schema.Document, 0, len(ids))
	for _, id := range ids {
		var doc schema.Document
		if err := json.Unmarshal(all[id], &doc); err != nil {
			return nil, fmt.Errorf("docstore: failed to decode document %s: %w", id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteDocument removes the document with the given ID.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	existed, err := s.kv.Delete(ctx, documentCollection, id)
	if err != nil {
		return fmt.Errorf("docstore: failed to delete document %s: %w", id, err)
	}
	if !existed {
		return fmt.Errorf("docstore: %w: %s", ErrDocumentNotFound, id)
	}

	order, err := s.loadOrder(ctx)
	if err != nil {
		return err
	}
	kept := order[:0]
	for _, existing := range order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.saveOrder(ctx, kept)
}

// loadOrder reads the persisted insertion sequence of document IDs.
func (s *DocumentStore) loadOrder(ctx context.Context) ([]string, error) {
	raw, found, err := s.kv.Get(ctx, metadataCollection, orderKey)
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to load document order: %w", err)
	}
	if !found {
		return nil, nil
	}

	var order []string
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("docstore: failed to decode document order: %w", err)
	}
	return order, nil
}

func (s *DocumentStore) saveOrder(ctx context.Context, order []string) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("docstore: failed to encode document order: %w", err)
	}
	if err := s.kv.Put(ctx, metadataCollection, orderKey, raw); err != nil {
		return fmt.Errorf("docstore: failed to store document order: %w", err)
	}
	return nil
}

// DocumentExists reports whether a document with the given ID is stored.
func (s *DocumentStore) DocumentExists(ctx context.Context, id string) (bool, error) {
	_, found, err := s.kv.Get(ctx, documentCollection, id)
	if err != nil {
		return false, fmt.Errorf("docstore: failed to check document %s: %w", id, err)
	}
	return found, nil
}
