package itemstore

import (
	"context"
	"sync"
)

// MemoryStore keeps items in process memory. Items are copied on the way in
// and out so callers never share backing arrays with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[int]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[int]Item)}
}

func (m *MemoryStore) Put(_ context.Context, collection string, key Key, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.collections[collection]
	if !ok {
		items = make(map[int]Item)
		m.collections[collection] = items
	}
	items[key.Value] = item.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, collection string, key Key) (Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.collections[collection][key.Value]
	if !ok {
		return nil, false, nil
	}
	return item.Clone(), true, nil
}

func (m *MemoryStore) Delete(_ context.Context, collection string, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], key.Value)
	return nil
}

func (m *MemoryStore) ScanAll(_ context.Context, collection string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collections[collection]
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out, nil
}
