package repository

import (
	"context"

	"github.com/devHenao/ventasPro/internal/domain"
)

// ProductRepository defines the admin operations on catalog products.
// Deleted products are deactivated and no longer listed.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves an active product by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns every active product.
	List(ctx context.Context) ([]domain.Product, error)

	// ListByCategory returns the active products of a category.
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)

	// Update replaces an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete deactivates a product.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the admin operations on catalog categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	ListByParent(ctx context.Context, parentID string) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}
