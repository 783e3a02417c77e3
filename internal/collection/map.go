// Package collection holds small generic containers shared by packages
// that serve concurrent HTTP handlers.
package collection

import "sync"

// SyncMap is a mutex-guarded map keyed by any comparable type. The bridge
// core is single threaded and does not need it; registries backing HTTP
// handlers do.
type SyncMap[K comparable, V any] struct {
	items map[K]V
	mux   sync.RWMutex
}

// NewSyncMap creates an empty map.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{items: make(map[K]V)}
}

// Get returns the value stored under k.
func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.items[k]
	return v, ok
}

// Put stores v under k, replacing any previous value.
func (m *SyncMap[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.items[k] = v
}

// Remove deletes k and returns the value it held.
func (m *SyncMap[K, V]) Remove(k K) (V, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	v, ok := m.items[k]
	if ok {
		delete(m.items, k)
	}
	return v, ok
}

// Len returns the number of stored entries.
func (m *SyncMap[K, V]) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.items)
}
