package storage

import (
	"context"
	"sync"
)

// MemoryStore implements BlobStore in process memory. Used by tests and
// useful for running the server without a MongoDB instance.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Save stores a copy of the bytes under a generated reference
func (s *MemoryStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	ref := newRef(filename)
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[ref] = cp
	return ref, nil
}

// Open returns the bytes stored under ref
func (s *MemoryStore) Open(_ context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[ref]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}
