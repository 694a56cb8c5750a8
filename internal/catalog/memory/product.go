// Package memory keeps the catalog in process memory. It backs the local
// catalog source and the admin repositories when no upstream is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/repository"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository stores products in insertion order. Deleted products stay
// in memory, deactivated.
type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]int
	items []domain.Product
}

// NewProductRepository creates a repository holding a copy of products.
func NewProductRepository(products ...domain.Product) *ProductRepository {
	r := &ProductRepository{byID: make(map[string]int)}
	for _, p := range products {
		r.byID[p.ID] = len(r.items)
		r.items = append(r.items, cloneProduct(p))
	}
	return r
}

// Create inserts a new product.
func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return apperrors.AlreadyExists("product", "id", p.ID)
	}
	r.byID[p.ID] = len(r.items)
	r.items = append(r.items, cloneProduct(*p))
	return nil
}

// GetByID retrieves an active product.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok || !r.items[i].IsActive {
		return nil, apperrors.NotFound("product", id)
	}
	p := cloneProduct(r.items[i])
	return &p, nil
}

// List returns every active product.
func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	return r.collect(func(domain.Product) bool { return true }), nil
}

// ListByCategory returns the active products of a category.
func (r *ProductRepository) ListByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	return r.collect(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

// Update replaces an active product.
func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[p.ID]
	if !ok || !r.items[i].IsActive {
		return apperrors.NotFound("product", p.ID)
	}
	r.items[i] = cloneProduct(*p)
	return nil
}

// Delete deactivates a product.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok || !r.items[i].IsActive {
		return apperrors.NotFound("product", id)
	}
	r.items[i].IsActive = false
	return nil
}

func (r *ProductRepository) collect(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		if p.IsActive && keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func cloneProduct(p domain.Product) domain.Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}
