// Package likes counts likes per item identifier.
package likes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/glabrego/wikiscroll/internal/content"
)

// Counter is the narrow surface navigation and acquisition depend on.
type Counter interface {
	// Increment adds one like. Unknown identifiers yield content.ErrNotFound.
	Increment(ctx context.Context, id int64) (int, error)
	// Get reports the count and whether the identifier is known.
	Get(ctx context.Context, id int64) (int, bool, error)
}

// Store is a Counter that also remembers the items it has seen.
type Store interface {
	Counter
	// Track registers items (new ones start at zero) and returns them with
	// their current counts merged in, preserving order.
	Track(ctx context.Context, items []content.Item) ([]content.Item, error)
	// Popular returns up to limit tracked items, most liked first.
	Popular(ctx context.Context, limit int) ([]content.Item, error)
	Close() error
}

type storedItem struct {
	item    content.Item
	likes   int
	tracked time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]*storedItem
	nowFn func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]*storedItem), nowFn: time.Now}
}

func (s *MemoryStore) Track(_ context.Context, items []content.Item) ([]content.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		stored, ok := s.items[item.ID]
		if !ok {
			stored = &storedItem{tracked: s.nowFn()}
			s.items[item.ID] = stored
		}
		stored.item = item
		item.LikeCount = stored.likes
		out = append(out, item)
	}
	return out, nil
}

func (s *MemoryStore) Increment(_ context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[id]
	if !ok {
		return 0, content.ErrNotFound
	}
	stored.likes++
	return stored.likes, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[id]
	if !ok {
		return 0, false, nil
	}
	return stored.likes, true, nil
}

func (s *MemoryStore) Popular(_ context.Context, limit int) ([]content.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*storedItem, 0, len(s.items))
	for _, stored := range s.items {
		all = append(all, stored)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].likes != all[j].likes {
			return all[i].likes > all[j].likes
		}
		if !all[i].tracked.Equal(all[j].tracked) {
			return all[i].tracked.Before(all[j].tracked)
		}
		return all[i].item.ID < all[j].item.ID
	})

	if limit < 1 {
		limit = 10
	}
	if limit > len(all) {
		limit = len(all)
	}
	out := make([]content.Item, 0, limit)
	for _, stored := range all[:limit] {
		item := stored.item
		item.LikeCount = stored.likes
		out = append(out, item)
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
