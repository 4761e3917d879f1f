package indexadapter

import (
	"sort"
	"sync"

	"github.com/kittclouds/searus/pkg/vectormath"
)

// Memory is an in-memory Adapter backed by plain maps, safe for concurrent
// use by multiple goroutines.
type Memory[T any] struct {
	mu      sync.RWMutex
	items   map[int]T
	vectors map[int][]float32
	tags    map[int][]string
}

// NewMemory builds an empty in-memory index.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		items:   make(map[int]T),
		vectors: make(map[int][]float32),
		tags:    make(map[int][]string),
	}
}

func (m *Memory[T]) Put(id int, item T, vector []float32, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[id] = item
	if vector != nil {
		m.vectors[id] = vector
	}
	if tags != nil {
		m.tags[id] = tags
	}
	return nil
}

func (m *Memory[T]) Remove(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	delete(m.vectors, id)
	delete(m.tags, id)
	return nil
}

func (m *Memory[T]) Get(id int) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	return item, ok
}

// KNN performs a brute-force scan over every stored vector.
func (m *Memory[T]) KNN(vector []float32, k int) []Neighbor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	neighbors := make([]Neighbor, 0, len(m.vectors))
	for id, v := range m.vectors {
		neighbors = append(neighbors, Neighbor{ID: id, Distance: vectormath.EuclideanDistance(vector, v)})
	}

	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Distance < neighbors[j].Distance })

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (m *Memory[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]T, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items
}

var _ Adapter[string] = (*Memory[string])(nil)
