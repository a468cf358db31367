package catalog

import (
	"sort"
	"sync"

	"mcpstarter/internal/domain"
)

// Store is the in-memory item catalog. Readers never block each other and a
// reload replaces the whole catalog at once.
type Store struct {
	mu    sync.RWMutex
	items map[string]domain.Item
	order []string
}

func NewStore(items []domain.Item) *Store {
	s := &Store{}
	s.Replace(items)
	return s
}

func (s *Store) Get(id string) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (s *Store) List() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// IDs returns the catalog IDs in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := append([]string(nil), s.order...)
	sort.Strings(ids)
	return ids
}

func (s *Store) Replace(items []domain.Item) {
	next := make(map[string]domain.Item, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := next[item.ID]; !dup {
			order = append(order, item.ID)
		}
		next[item.ID] = item
	}
	s.mu.Lock()
	s.items = next
	s.order = order
	s.mu.Unlock()
}

var _ domain.ItemStore = (*Store)(nil)
