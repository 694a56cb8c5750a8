package store

import (
	"log/slog"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/reactive"
)

// FilterCriteriaStore owns the current search and filter selection.
type FilterCriteriaStore struct {
	criteria *reactive.Cell[domain.FilterCriteria]
	active   *reactive.View[bool]
	logger   *slog.Logger
}

// NewFilterCriteriaStore creates a store holding the default criteria.
func NewFilterCriteriaStore(logger *slog.Logger) *FilterCriteriaStore {
	s := &FilterCriteriaStore{
		criteria: reactive.NewCell(domain.DefaultFilterCriteria()),
		logger:   logger,
	}
	s.active = reactive.Map(s.criteria, domain.FilterCriteria.HasActiveFilters)
	return s
}

// State exposes the underlying cell.
func (s *FilterCriteriaStore) State() *reactive.Cell[domain.FilterCriteria] {
	return s.criteria
}

// Criteria returns a copy of the current criteria.
func (s *FilterCriteriaStore) Criteria() domain.FilterCriteria {
	return s.criteria.Get().Clone()
}

// HasActiveFilters is true while any field differs from its default.
func (s *FilterCriteriaStore) HasActiveFilters() *reactive.View[bool] {
	return s.active
}

// SetPriceRange replaces both bounds. An inverted range is stored as given and
// matches no product.
func (s *FilterCriteriaStore) SetPriceRange(minPrice, maxPrice int64) {
	s.update(func(f *domain.FilterCriteria) {
		f.PriceMin = minPrice
		f.PriceMax = maxPrice
	})
}

// ToggleCategory adds or removes a category from the selection.
func (s *FilterCriteriaStore) ToggleCategory(id string) {
	s.update(func(f *domain.FilterCriteria) {
		f.CategoryIDs = domain.Toggle(f.CategoryIDs, id)
	})
}

// ToggleBrand adds or removes a brand from the selection.
func (s *FilterCriteriaStore) ToggleBrand(brand string) {
	s.update(func(f *domain.FilterCriteria) {
		f.Brands = domain.Toggle(f.Brands, brand)
	})
}

func (s *FilterCriteriaStore) SetInStockOnly(v bool) {
	s.update(func(f *domain.FilterCriteria) { f.InStockOnly = v })
}

func (s *FilterCriteriaStore) SetMinRating(v float64) {
	s.update(func(f *domain.FilterCriteria) { f.MinRating = v })
}

func (s *FilterCriteriaStore) SetSearchTerm(term string) {
	s.update(func(f *domain.FilterCriteria) { f.SearchTerm = term })
}

// ClearAll restores every field to its default.
func (s *FilterCriteriaStore) ClearAll() {
	s.criteria.Set(domain.DefaultFilterCriteria())
	s.logger.Debug("filters cleared")
}

func (s *FilterCriteriaStore) update(fn func(*domain.FilterCriteria)) {
	s.criteria.Update(func(cur domain.FilterCriteria) domain.FilterCriteria {
		next := cur.Clone()
		fn(&next)
		return next
	})
	s.logger.Debug("filters updated", slog.Bool("active", s.active.Get()))
}
