package session

import (
	"errors"
	"maps"
	"sync"
)

// ErrKeyNotFound is returned by Storage.Get when the key has never been set
// or has been removed.
var ErrKeyNotFound = errors.New("session: key not found")

// Storage is the persistence capability the Store writes through.
// Implementations must be safe for concurrent use.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// NoopStorage is used when no persistence medium is available. Reads always
// miss and writes are discarded.
type NoopStorage struct{}

func (NoopStorage) Get(string) (string, error) { return "", ErrKeyNotFound }
func (NoopStorage) Set(string, string) error   { return nil }
func (NoopStorage) Remove(string) error        { return nil }

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of every stored value.
func (m *MemoryStorage) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}
