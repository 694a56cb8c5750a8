package memory

import (
	"context"

	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/domain"
)

var _ catalog.Source = (*Source)(nil)

// Source serves the full active collection from the repositories and leaves
// filtering to the query engine.
type Source struct {
	products   *ProductRepository
	categories *CategoryRepository
}

// NewSource creates a local catalog source.
func NewSource(products *ProductRepository, categories *CategoryRepository) *Source {
	return &Source{products: products, categories: categories}
}

// Fetch returns every active product regardless of q.
func (s *Source) Fetch(ctx context.Context, _ catalog.Query) (catalog.Batch, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return catalog.Batch{}, err
	}
	return catalog.Batch{Products: products}, nil
}

func (s *Source) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Source) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
