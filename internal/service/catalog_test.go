package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/catalog/memory"
	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/query"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/pagination"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock Source ---

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, q catalog.Query) (catalog.Batch, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(catalog.Batch), args.Error(1)
}

func (m *mockSource) Get(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockSource) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func newLocalCatalog() *CatalogService {
	src := memory.NewSource(
		memory.NewProductRepository(memory.SeedProducts()...),
		memory.NewCategoryRepository(memory.SeedCategories()...),
	)
	return NewCatalogService(src, query.New(language.Spanish), testLogger())
}

func defaultQuery() catalog.Query {
	return catalog.Query{
		Criteria: domain.DefaultFilterCriteria(),
		Sort:     domain.DefaultSortOption(),
		Page:     pagination.DefaultRequest(),
	}
}

func TestCatalogService_ListLocal(t *testing.T) {
	svc := newLocalCatalog()

	q := defaultQuery()
	q.Criteria.SearchTerm = "laptop"
	q.Sort = domain.SortOption{Field: domain.SortByPrice, Direction: domain.Desc}

	listing, err := svc.List(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, listing.Degraded)
	assert.Equal(t, 2, listing.TotalItems)
	require.Len(t, listing.Items, 2)
	assert.Equal(t, "MacBook Pro M3", listing.Items[0].Name)
}

func TestCatalogService_ListPagedSourceKeepsShape(t *testing.T) {
	src := new(mockSource)
	q := defaultQuery()
	q.Page = pagination.Request{Page: 2, PageSize: 2}
	src.On("Fetch", mock.Anything, q).Return(catalog.Batch{
		Products:   []domain.Product{{ID: "3"}, {ID: "4"}},
		Paged:      true,
		TotalItems: 5,
	}, nil)

	svc := NewCatalogService(src, query.New(language.Spanish), testLogger())
	listing, err := svc.List(context.Background(), q)
	require.NoError(t, err)

	assert.Len(t, listing.Items, 2)
	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, 5, listing.TotalItems)
	assert.Equal(t, 3, listing.TotalPages)
	assert.True(t, listing.HasNext)
	src.AssertExpectations(t)
}

func TestCatalogService_ListDegradesOnSourceFailure(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything, mock.Anything).
		Return(catalog.Batch{}, apperrors.ServiceUnavailable("catalog upstream unavailable", errors.New("dial tcp")))

	svc := NewCatalogService(src, query.New(language.Spanish), testLogger())
	listing, err := svc.List(context.Background(), defaultQuery())
	require.NoError(t, err)

	assert.True(t, listing.Degraded)
	assert.True(t, listing.Retryable)
	assert.NotEmpty(t, listing.Error)
	assert.Empty(t, listing.Items)
	assert.NotNil(t, listing.Items)
	assert.Zero(t, listing.TotalItems)
}

func TestCatalogService_ListDegradedNotRetryable(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything, mock.Anything).
		Return(catalog.Batch{}, apperrors.InvalidInput("catalog: unsupported filter"))

	svc := NewCatalogService(src, query.New(language.Spanish), testLogger())
	listing, err := svc.List(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.True(t, listing.Degraded)
	assert.False(t, listing.Retryable)
}

func TestCatalogService_ListRejectsInvalidInput(t *testing.T) {
	src := new(mockSource)
	svc := NewCatalogService(src, query.New(language.Spanish), testLogger())

	q := defaultQuery()
	q.Page.PageSize = 0
	_, err := svc.List(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	q = defaultQuery()
	q.Sort.Field = "weight"
	_, err = svc.List(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	src.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestCatalogService_Product(t *testing.T) {
	svc := newLocalCatalog()

	p, err := svc.Product(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Mouse Logitech MX Master 3", p.Name)

	_, err = svc.Product(context.Background(), "404")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Product(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_Categories(t *testing.T) {
	svc := newLocalCatalog()

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CategorySummary{
		{ID: "3", Name: "Laptops", Count: 2},
		{ID: "5", Name: "Mouse y Teclados", Count: 1},
	}, got)
}

func TestCatalogService_CategoriesWithoutCounts(t *testing.T) {
	src := new(mockSource)
	src.On("Categories", mock.Anything).Return([]domain.Category{{ID: "3", Name: "Laptops"}}, nil)
	src.On("Fetch", mock.Anything, mock.Anything).Return(catalog.Batch{}, errors.New("timeout"))

	svc := NewCatalogService(src, query.New(language.Spanish), testLogger())
	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CategorySummary{{ID: "3", Name: "Laptops"}}, got)
}
