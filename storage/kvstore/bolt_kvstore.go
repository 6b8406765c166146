package kvstore

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// BoltKVStore persists collections as bbolt buckets. Each collection
// maps to one bucket created on first write.
type BoltKVStore struct {
	db *bbolt.DB
}

// NewBoltKVStore opens or creates the bbolt database at path.
func NewBoltKVStore(path string) (*BoltKVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("kvstore: path must not be empty")
	}
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("kvstore: failed to open bolt db: %w", err)
	}
	return &BoltKVStore{db: db}, nil
}

func (s *BoltKVStore) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := validateKeys(collection, key); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return fmt.Errorf("kvstore: failed to create bucket %s: %w", collection, err)
		}
		return bucket.Put([]byte(key), value)
	})
}

func (s *BoltKVStore) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	if err := validateKeys(collection, key); err != nil {
		return nil, false, err
	}

	var value []byte
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			value = append([]byte(nil), raw...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, found, nil
}

func (s *BoltKVStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			out[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltKVStore) Delete(ctx context.Context, collection, key string) (bool, error) {
	if err := validateKeys(collection, key); err != nil {
		return false, err
	}

	existed := false
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}
		if bucket.Get([]byte(key)) == nil {
			return nil
		}
		existed = true
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

func (s *BoltKVStore) Close() error {
	return s.db.Close()
}

var _ KVStore = (*BoltKVStore)(nil)
