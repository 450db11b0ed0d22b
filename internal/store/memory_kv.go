package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryKeyValueStore is a process-local [KeyValueStore]. It loses its
// contents on exit and is meant for tests and throwaway runs.
type MemoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKeyValueStore returns an empty in-memory store.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: make(map[string]string)}
}

func (m *MemoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryKeyValueStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryKeyValueStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryKeyValueStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
