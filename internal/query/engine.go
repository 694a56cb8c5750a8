// Package query filters, sorts and paginates product collections. It holds no
// state and never mutates its input.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/pkg/pagination"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// Engine runs the product query pipeline for one locale. An Engine is safe for
// concurrent use.
type Engine struct {
	tag language.Tag
}

// New creates an engine whose string comparisons follow tag.
func New(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

// Run filters, sorts and paginates products. Invalid page or sort input is
// rejected; pages past the end yield no items.
func (e *Engine) Run(products []domain.Product, criteria domain.FilterCriteria, sort domain.SortOption, page pagination.Request) (pagination.Result[domain.Product], error) {
	if err := page.Validate(); err != nil {
		return pagination.Result[domain.Product]{}, err
	}
	sorted, err := e.Apply(products, criteria, sort)
	if err != nil {
		return pagination.Result[domain.Product]{}, err
	}
	return pagination.Paginate(sorted, page)
}

// Apply filters and sorts without paginating.
func (e *Engine) Apply(products []domain.Product, criteria domain.FilterCriteria, sort domain.SortOption) ([]domain.Product, error) {
	if err := validator.ValidateInput(sort); err != nil {
		return nil, err
	}
	out := e.Filter(products, criteria)
	e.Sort(out, sort)
	return out, nil
}

// Filter returns a new slice holding the products that match criteria.
func (e *Engine) Filter(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	m := newMatcher(criteria, cases.Fold())

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders products in place. The sort is stable and desc reverses the
// comparison, so equal elements keep their relative order either way.
func (e *Engine) Sort(products []domain.Product, opt domain.SortOption) {
	compare := e.comparator(opt.Field)
	if opt.Direction == domain.Desc {
		asc := compare
		compare = func(a, b domain.Product) int { return -asc(a, b) }
	}
	slices.SortStableFunc(products, compare)
}

// Categories summarizes the categories present in products, ordered by name.
func (e *Engine) Categories(products []domain.Product) []domain.CategorySummary {
	var out []domain.CategorySummary
	index := make(map[string]int)
	for _, p := range products {
		if p.CategoryID == "" {
			continue
		}
		if i, ok := index[p.CategoryID]; ok {
			out[i].Count++
			continue
		}
		index[p.CategoryID] = len(out)
		out = append(out, domain.CategorySummary{ID: p.CategoryID, Name: p.CategoryName, Count: 1})
	}

	col := e.collator()
	slices.SortStableFunc(out, func(a, b domain.CategorySummary) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

// collator is not safe for concurrent use, so each call builds its own.
func (e *Engine) collator() *collate.Collator {
	return collate.New(e.tag, collate.IgnoreCase)
}

func (e *Engine) comparator(field domain.SortField) func(a, b domain.Product) int {
	switch field {
	case domain.SortByPrice:
		return func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortByRating:
		return func(a, b domain.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case domain.SortByCreatedAt:
		return func(a, b domain.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case domain.SortByPopularity:
		return func(a, b domain.Product) int { return cmp.Compare(a.ReviewCount, b.ReviewCount) }
	default:
		col := e.collator()
		return func(a, b domain.Product) int { return col.CompareString(a.Name, b.Name) }
	}
}

type matcher struct {
	criteria domain.FilterCriteria
	fold     cases.Caser
	term     string
}

func newMatcher(criteria domain.FilterCriteria, fold cases.Caser) *matcher {
	m := &matcher{criteria: criteria, fold: fold}
	if term := criteria.Search(); term != "" {
		m.term = m.fold.String(term)
	}
	return m
}

func (m *matcher) match(p domain.Product) bool {
	c := m.criteria

	if len(c.CategoryIDs) > 0 && !c.HasCategory(p.CategoryID) {
		return false
	}
	if len(c.Brands) > 0 && !c.HasBrand(p.Brand) {
		return false
	}
	if c.PriceBounded() && (p.Price < c.PriceMin || p.Price > c.PriceMax) {
		return false
	}
	if c.InStockOnly && !p.InStock() {
		return false
	}
	if c.MinRating > 0 && p.Rating < c.MinRating {
		return false
	}
	if m.term != "" && !m.matchesTerm(p) {
		return false
	}
	return true
}

func (m *matcher) matchesTerm(p domain.Product) bool {
	if m.contains(p.Name) || m.contains(p.Description) || m.contains(p.CategoryName) {
		return true
	}
	return slices.ContainsFunc(p.Tags, m.contains)
}

func (m *matcher) contains(s string) bool {
	return s != "" && strings.Contains(m.fold.String(s), m.term)
}
