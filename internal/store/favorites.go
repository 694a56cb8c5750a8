package store

import (
	"log/slog"
	"slices"

	"github.com/devHenao/ventasPro/internal/reactive"
)

// FavoritesStore owns the ordered set of favorite product IDs.
type FavoritesStore struct {
	ids    *reactive.Cell[[]string]
	count  *reactive.View[int]
	logger *slog.Logger
}

// NewFavoritesStore creates the store from hydrated IDs, dropping duplicates
// and empty IDs while keeping first-seen order.
func NewFavoritesStore(initial []string, logger *slog.Logger) *FavoritesStore {
	ids := make([]string, 0, len(initial))
	for _, id := range initial {
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	s := &FavoritesStore{
		ids:    reactive.NewCell(ids),
		logger: logger,
	}
	s.count = reactive.Map(s.ids, func(ids []string) int { return len(ids) })
	return s
}

// State exposes the underlying cell.
func (s *FavoritesStore) State() *reactive.Cell[[]string] {
	return s.ids
}

// IDs returns a copy of the favorite IDs in insertion order.
func (s *FavoritesStore) IDs() []string {
	return slices.Clone(s.ids.Get())
}

// Count is the derived number of favorites.
func (s *FavoritesStore) Count() *reactive.View[int] {
	return s.count
}

// Contains reports whether id is a favorite.
func (s *FavoritesStore) Contains(id string) bool {
	return slices.Contains(s.ids.Get(), id)
}

// Add inserts id when absent.
func (s *FavoritesStore) Add(id string) {
	if s.Contains(id) {
		return
	}
	s.ids.Set(append(slices.Clone(s.ids.Get()), id))
	s.logger.Debug("favorite added", slog.String("product_id", id))
}

// Remove deletes id when present.
func (s *FavoritesStore) Remove(id string) {
	i := slices.Index(s.ids.Get(), id)
	if i < 0 {
		return
	}
	s.ids.Set(slices.Delete(slices.Clone(s.ids.Get()), i, i+1))
	s.logger.Debug("favorite removed", slog.String("product_id", id))
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is a favorite afterwards.
func (s *FavoritesStore) Toggle(id string) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// Clear removes every favorite.
func (s *FavoritesStore) Clear() {
	s.ids.Set([]string{})
}
