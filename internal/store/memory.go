package store

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory Store. Records are kept in their
// encoded form so reads go through the same decoding path as durable stores.
type MemoryStore struct {
	mu sync.RWMutex

	// key: kind, value: encoded record
	data map[Kind][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[Kind][]byte),
	}
}

// Read returns the record held for kind.
func (s *MemoryStore) Read(_ context.Context, kind Kind) (Record, error) {
	if err := checkKind(kind); err != nil {
		return Record{}, err
	}

	s.mu.RLock()
	raw, ok := s.data[kind]
	s.mu.RUnlock()

	if !ok {
		return Record{}, ErrNotFound
	}
	return DecodeRecord(kind, raw)
}

// Write replaces the record held for kind.
func (s *MemoryStore) Write(_ context.Context, kind Kind, rec Record) error {
	raw, err := EncodeRecord(kind, rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[kind] = raw
	return nil
}

// Put stores raw bytes for kind as-is. It lets callers seed corrupt or
// hand-written records.
func (s *MemoryStore) Put(kind Kind, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[kind] = append([]byte(nil), raw...)
}
