// Package catalog defines where storefront products come from. A Source either
// returns the whole active collection, left for the query engine to filter, or
// a page the upstream already filtered, sorted and cut.
package catalog

import (
	"context"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/pkg/pagination"
)

// Query is what the storefront is currently looking at.
type Query struct {
	Criteria domain.FilterCriteria
	Sort     domain.SortOption
	Page     pagination.Request
}

// Batch is the answer of a Source. When Paged is set, Products is already the
// requested page and TotalItems counts the whole filtered result. Otherwise
// Products is the full collection and TotalItems is unused.
type Batch struct {
	Products   []domain.Product
	Paged      bool
	TotalItems int
}

// Source supplies catalog products and categories.
type Source interface {
	Fetch(ctx context.Context, q Query) (Batch, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}
