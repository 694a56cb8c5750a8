package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/repository"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/httpclient"
	"github.com/devHenao/ventasPro/pkg/logger"
	"github.com/devHenao/ventasPro/pkg/slug"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// TokenProvider supplies the bearer credential of the signed-in administrator,
// or an empty string.
type TokenProvider interface {
	Token() string
}

// AdminService implements product and category administration. Every call
// requires a credential; its validity is left to the repository backend.
type AdminService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tokens     TokenProvider
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdminService creates a new admin service.
func NewAdminService(products repository.ProductRepository, categories repository.CategoryRepository, tokens TokenProvider, logger *slog.Logger) *AdminService {
	return &AdminService{
		products:   products,
		categories: categories,
		tokens:     tokens,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// authorize attaches the credential to ctx for remote repositories.
func (s *AdminService) authorize(ctx context.Context) (context.Context, error) {
	tok := s.tokens.Token()
	if tok == "" {
		return ctx, apperrors.Unauthorized("sign in to manage the catalog")
	}
	return httpclient.WithBearerToken(ctx, tok), nil
}

// ListProducts returns the active products, optionally of one category.
func (s *AdminService) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID != "" {
		return s.products.ListByCategory(ctx, categoryID)
	}
	return s.products.List(ctx)
}

// CreateProduct validates input and stores a new active product.
func (s *AdminService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Product{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedAt: now,
	}
	applyProductInput(p, in, category, now)

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "product created",
		slog.String("product_id", p.ID),
		slog.String("slug", p.Slug),
	)
	return p, nil
}

// UpdateProduct replaces the editable fields of a product. The ID and
// creation time are kept.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	applyProductInput(p, in, category, s.now())

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "product updated", slog.String("product_id", p.ID))
	return p, nil
}

// DeleteProduct deactivates a product.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// ListCategories returns the active categories, optionally only the children
// of parentID.
func (s *AdminService) ListCategories(ctx context.Context, parentID string) ([]domain.Category, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if parentID != "" {
		return s.categories.ListByParent(ctx, parentID)
	}
	return s.categories.List(ctx)
}

// CreateCategory validates input and stores a new active category.
func (s *AdminService) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	c := &domain.Category{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedAt: s.now(),
	}
	if err := s.applyCategoryInput(ctx, c, in); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "category created",
		slog.String("category_id", c.ID),
		slog.String("slug", c.Slug),
	)
	return c, nil
}

// UpdateCategory replaces the editable fields of a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, in domain.CategoryInput) (*domain.Category, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if err := s.applyCategoryInput(ctx, c, in); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "category updated", slog.String("category_id", c.ID))
	return c, nil
}

// DeleteCategory deactivates a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "category deleted", slog.String("category_id", id))
	return nil
}

func (s *AdminService) category(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("category %s does not exist", id))
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *AdminService) applyCategoryInput(ctx context.Context, c *domain.Category, in domain.CategoryInput) error {
	if in.ParentID != "" {
		if in.ParentID == c.ID {
			return apperrors.InvalidInput("a category cannot be its own parent")
		}
		if _, err := s.category(ctx, in.ParentID); err != nil {
			return err
		}
	}

	c.Name = in.Name
	c.Slug = slug.Generate(in.Name)
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.ParentID = in.ParentID
	return nil
}

func applyProductInput(p *domain.Product, in domain.ProductInput, category *domain.Category, now time.Time) {
	p.Name = in.Name
	p.Slug = slug.Generate(in.Name)
	p.SKU = in.SKU
	p.Description = in.Description
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	p.Stock = in.Stock
	p.Rating = in.Rating
	p.Brand = in.Brand
	p.CategoryID = category.ID
	p.CategoryName = category.Name
	p.ImageURL = in.ImageURL
	p.Tags = append([]string(nil), in.Tags...)
	p.IsFeatured = in.IsFeatured
	p.UpdatedAt = now
}
