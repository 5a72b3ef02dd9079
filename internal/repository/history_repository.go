package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrHistoryNotFound is returned when no history has been stored under a key.
var ErrHistoryNotFound = errors.New("history not found")

// HistoryStore persists the serialized snapshot history under a fixed key.
type HistoryStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
}

// MemoryHistoryStore keeps history in process memory.
type MemoryHistoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryHistoryStore constructs an empty in-memory store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{data: make(map[string][]byte)}
}

// Read returns the stored payload for key.
func (s *MemoryHistoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	if !ok {
		return nil, ErrHistoryNotFound
	}
	return append([]byte{}, payload...), nil
}

// Write replaces the payload stored under key.
func (s *MemoryHistoryStore) Write(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte{}, payload...)
	return nil
}
