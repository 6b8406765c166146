package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONKVStore keeps all collections in memory and mirrors every change
// to a single JSON file. Writes go through a temp file and rename so a
// crash never leaves a torn store behind.
type JSONKVStore struct {
	mu   sync.RWMutex
	path string
	data map[string]map[string]json.RawMessage
}

// NewJSONKVStore opens the store at path, loading existing data when
// the file is present.
func NewJSONKVStore(path string) (*JSONKVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("kvstore: path must not be empty")
	}

	s := &JSONKVStore{
		path: path,
		data: make(map[string]map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("kvstore: failed to parse %s: %w", path, err)
	}
	return s, nil
}

func (s *JSONKVStore) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := validateKeys(collection, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection]; !ok {
		s.data[collection] = make(map[string]json.RawMessage)
	}
	s.data[collection][key] = append(json.RawMessage(nil), value...)
	return s.persistLocked()
}

func (s *JSONKVStore) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	if err := validateKeys(collection, key); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[collection][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *JSONKVStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.data[collection]))
	for k, v := range s.data[collection] {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (s *JSONKVStore) Delete(ctx context.Context, collection, key string) (bool, error) {
	if err := validateKeys(collection, key); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][key]; !ok {
		return false, nil
	}
	delete(s.data[collection], key)
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONKVStore) Close() error {
	return nil
}

func (s *JSONKVStore) persistLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kvstore-*")
	if err != nil {
		return fmt.Errorf("kvstore: failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: failed to replace %s: %w", s.path, err)
	}
	return nil
}

func validateKeys(collection, key string) error {
	if collection == "" {
		return fmt.Errorf("kvstore: collection must not be empty")
	}
	if key == "" {
		return fmt.Errorf("kvstore: key must not be empty")
	}
	return nil
}

var _ KVStore = (*JSONKVStore)(nil)
