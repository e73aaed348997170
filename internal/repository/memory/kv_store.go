package memory

import (
	"alcyxob/coachy/internal/repository"
	"context"
	"sync"
)

// KeyValueStore keeps session flags and preferences in process memory.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string // owner -> key -> value
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{values: make(map[string]map[string]string)}
}

func (s *KeyValueStore) Get(ctx context.Context, owner, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[owner][key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (s *KeyValueStore) Set(ctx context.Context, owner, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.values[owner]
	if !ok {
		bucket = make(map[string]string)
		s.values[owner] = bucket
	}
	bucket[key] = value
	return nil
}

// Delete is a no-op for missing keys.
func (s *KeyValueStore) Delete(ctx context.Context, owner, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values[owner], key)
	if len(s.values[owner]) == 0 {
		delete(s.values, owner)
	}
	return nil
}
