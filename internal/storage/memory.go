package storage

import "sync"

// MemoryKV is an in-process key-value store. It is used when no database is
// available and in tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]int)}
}

// Get returns the value for key, or def if it was never set.
func (m *MemoryKV) Get(key string, def int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Set stores value under key. It always succeeds.
func (m *MemoryKV) Set(key string, value int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return true
}
