package memory

import (
	"context"
	"sync"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/repository"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository stores categories in insertion order.
type CategoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]int
	items []domain.Category
}

// NewCategoryRepository creates a repository holding categories.
func NewCategoryRepository(categories ...domain.Category) *CategoryRepository {
	r := &CategoryRepository{byID: make(map[string]int)}
	for _, c := range categories {
		r.byID[c.ID] = len(r.items)
		r.items = append(r.items, c)
	}
	return r
}

func (r *CategoryRepository) Create(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; ok {
		return apperrors.AlreadyExists("category", "id", c.ID)
	}
	for _, existing := range r.items {
		if existing.IsActive && existing.Slug == c.Slug {
			return apperrors.AlreadyExists("category", "slug", c.Slug)
		}
	}
	r.byID[c.ID] = len(r.items)
	r.items = append(r.items, *c)
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok || !r.items[i].IsActive {
		return nil, apperrors.NotFound("category", id)
	}
	c := r.items[i]
	return &c, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	return r.collect(func(domain.Category) bool { return true }), nil
}

// ListByParent returns the active children of parentID. An empty parentID
// lists the top-level categories.
func (r *CategoryRepository) ListByParent(_ context.Context, parentID string) ([]domain.Category, error) {
	return r.collect(func(c domain.Category) bool { return c.ParentID == parentID }), nil
}

func (r *CategoryRepository) Update(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[c.ID]
	if !ok || !r.items[i].IsActive {
		return apperrors.NotFound("category", c.ID)
	}
	r.items[i] = *c
	return nil
}

// Delete deactivates a category. Its products are left untouched.
func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok || !r.items[i].IsActive {
		return apperrors.NotFound("category", id)
	}
	r.items[i].IsActive = false
	return nil
}

func (r *CategoryRepository) collect(keep func(domain.Category) bool) []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.items))
	for _, c := range r.items {
		if c.IsActive && keep(c) {
			out = append(out, c)
		}
	}
	return out
}
