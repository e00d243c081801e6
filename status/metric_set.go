package status

import (
	"iter"
	"slices"
	"sync"
)

// MetricSet maps metric names to lazily allocated values of T
// Callers cache the returned pointer; reads and writes then bypass the lock
type MetricSet[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricSet[T any]() *MetricSet[T] {
	return &MetricSet[T]{items: make(map[string]*T)}
}

// Get returns the value for name, allocating it on first use
func (m *MetricSet[T]) Get(name string) *T {
	m.mu.RLock()
	ptr, ok := m.items[name]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[name]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[name] = ptr
	return ptr
}

func (m *MetricSet[T]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[name]
	return ok
}

func (m *MetricSet[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// All iterates in name order over a copy taken under the lock
func (m *MetricSet[T]) All() iter.Seq2[string, *T] {
	m.mu.RLock()
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	values := make(map[string]*T, len(m.items))
	for name, v := range m.items {
		values[name] = v
	}
	m.mu.RUnlock()
	slices.Sort(names)

	return func(yield func(string, *T) bool) {
		for _, name := range names {
			if !yield(name, values[name]) {
				return
			}
		}
	}
}
