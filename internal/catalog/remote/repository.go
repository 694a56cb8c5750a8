package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
)

// ProductRepository forwards product administration to the upstream. The
// bearer token travels in ctx, see httpclient.WithBearerToken.
type ProductRepository struct {
	client *Client
}

// NewProductRepository creates a remote product repository.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	var res envelope[domain.Product]
	if err := r.client.call(ctx, http.MethodPost, "/products", nil, p, &res); err != nil {
		return err
	}
	if res.Data.ID != "" {
		*p = res.Data
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var res envelope[domain.Product]
	if err := r.client.call(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, nil)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.list(ctx, url.Values{"category_id": {categoryID}})
}

func (r *ProductRepository) list(ctx context.Context, q url.Values) ([]domain.Product, error) {
	var res envelope[[]domain.Product]
	if err := r.client.call(ctx, http.MethodGet, "/products", q, nil, &res); err != nil {
		return nil, err
	}
	return nonNil(res.Data), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.client.call(ctx, http.MethodPut, "/products/"+url.PathEscape(p.ID), nil, p, nil)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.client.call(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}

// CategoryRepository forwards category administration to the upstream.
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository creates a remote category repository.
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	var res envelope[domain.Category]
	if err := r.client.call(ctx, http.MethodPost, "/categories", nil, c, &res); err != nil {
		return err
	}
	if res.Data.ID != "" {
		*c = res.Data
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var res envelope[domain.Category]
	if err := r.client.call(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, nil)
}

func (r *CategoryRepository) ListByParent(ctx context.Context, parentID string) ([]domain.Category, error) {
	return r.list(ctx, url.Values{"parent_id": {parentID}})
}

func (r *CategoryRepository) list(ctx context.Context, q url.Values) ([]domain.Category, error) {
	var res envelope[[]domain.Category]
	if err := r.client.call(ctx, http.MethodGet, "/categories", q, nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []domain.Category{}, nil
	}
	return res.Data, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.client.call(ctx, http.MethodPut, "/categories/"+url.PathEscape(c.ID), nil, c, nil)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.client.call(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}
