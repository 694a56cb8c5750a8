package domain

import (
	"slices"
	"strings"
)

// Default price bounds in minor units. A range equal to the defaults is
// treated as unbounded.
const (
	DefaultPriceMin int64 = 0
	DefaultPriceMax int64 = 1_000_000
)

// FilterCriteria holds the current search and filter selection. CategoryIDs
// and Brands behave as sets that keep insertion order.
type FilterCriteria struct {
	PriceMin    int64    `json:"price_min"`
	PriceMax    int64    `json:"price_max"`
	CategoryIDs []string `json:"category_ids"`
	Brands      []string `json:"brands"`
	InStockOnly bool     `json:"in_stock_only"`
	MinRating   float64  `json:"min_rating"`
	SearchTerm  string   `json:"search_term"`
}

// DefaultFilterCriteria returns criteria that match every product.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PriceMin:    DefaultPriceMin,
		PriceMax:    DefaultPriceMax,
		CategoryIDs: []string{},
		Brands:      []string{},
	}
}

// Clone returns a deep copy.
func (f FilterCriteria) Clone() FilterCriteria {
	out := f
	out.CategoryIDs = append([]string{}, f.CategoryIDs...)
	out.Brands = append([]string{}, f.Brands...)
	return out
}

// PriceBounded reports whether the price range differs from the default.
func (f FilterCriteria) PriceBounded() bool {
	return f.PriceMin != DefaultPriceMin || f.PriceMax != DefaultPriceMax
}

// Search returns the trimmed search term.
func (f FilterCriteria) Search() string {
	return strings.TrimSpace(f.SearchTerm)
}

// HasActiveFilters reports whether any field differs from its default.
func (f FilterCriteria) HasActiveFilters() bool {
	return len(f.CategoryIDs) > 0 ||
		len(f.Brands) > 0 ||
		f.InStockOnly ||
		f.MinRating > 0 ||
		f.Search() != "" ||
		f.PriceBounded()
}

// HasCategory reports whether id is selected.
func (f FilterCriteria) HasCategory(id string) bool {
	return slices.Contains(f.CategoryIDs, id)
}

// HasBrand reports whether brand is selected.
func (f FilterCriteria) HasBrand(brand string) bool {
	return slices.Contains(f.Brands, brand)
}

// Toggle returns a copy of set with v removed when present and appended when
// absent.
func Toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
