// internal/db/kv.go
package db

import (
	"context"
	"time"
)

const kvQueryTimeout = 5 * time.Second

// KVStore adapts the kv table to the booking availability store's key-value
// interface. It is durable and shared by every session.
type KVStore struct {
	queries *Queries
}

// NewKVStore binds a key-value view over the database.
func NewKVStore(database *DB) *KVStore {
	return &KVStore{queries: database.Queries}
}

// Get reads one key.
func (s *KVStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), kvQueryTimeout)
	defer cancel()
	return s.queries.GetValue(ctx, key)
}

// Set writes one key, overwriting any previous value.
func (s *KVStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), kvQueryTimeout)
	defer cancel()
	return s.queries.SetValue(ctx, key, value)
}
