package logic

import (
	"sync"

	"ouroboros/internal/domain"
)

// MemoryItemStore is an in-memory implementation of ItemStore
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []domain.Item
}

// NewMemoryItemStore creates a new memory-based item store
func NewMemoryItemStore(items []domain.Item) *MemoryItemStore {
	s := &MemoryItemStore{}
	s.SetItems(items)
	return s
}

func (s *MemoryItemStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// CellContent returns the item's label, or an empty string for an index that has gone
// away since the caller read the count
func (s *MemoryItemStore) CellContent(logical int) string {
	item, ok := s.GetItem(logical)
	if !ok {
		return ""
	}
	return item.Label()
}

func (s *MemoryItemStore) GetItem(logical int) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if logical < 0 || logical >= len(s.items) {
		return domain.Item{}, false
	}
	return s.items[logical], true
}

func (s *MemoryItemStore) SetItems(items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]domain.Item, len(items))
	copy(s.items, items)
}
