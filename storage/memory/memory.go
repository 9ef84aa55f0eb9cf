// Package memory is an in-process storage.Storage, optionally limited in
// size the way browser local storage is.
package memory

import (
	"fmt"
	"sync"

	"github.com/irsalhamdi/storefront-cart/storage"
)

// Memory keeps values in a map. The zero capacity means unlimited.
type Memory struct {
	mu       sync.RWMutex
	values   map[string]string
	capacity int
	used     int
}

// New returns an empty store. capacity bounds the summed byte length of
// all keys and values; zero or less disables the bound.
func New(capacity int) *Memory {
	return &Memory{
		values:   make(map[string]string),
		capacity: capacity,
	}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.values[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}

	if m.capacity > 0 && used > m.capacity {
		return fmt.Errorf("setting key[%s] needs %d of %d bytes: %w", key, used, m.capacity, storage.ErrQuotaExceeded)
	}

	m.values[key] = value
	m.used = used
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.values[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.values, key)
	}
	return nil
}

// Used reports the bytes currently held.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
