package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/devHenao/ventasPro/internal/domain"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/pagination"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func catalog() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Dell XPS 13", Description: "Ultrabook con pantalla InfinityEdge",
			Price: 129999, Stock: 15, Rating: 4.5, ReviewCount: 120, Brand: "Dell",
			CategoryID: "c1", CategoryName: "Laptops", Tags: []string{"ultrabook"},
			CreatedAt: base,
		},
		{
			ID: "2", Name: "Logitech MX Master 3", Description: "Mouse inalámbrico ergonómico",
			Price: 9999, Stock: 50, Rating: 4.8, ReviewCount: 300, Brand: "Logitech",
			CategoryID: "c2", CategoryName: "Periféricos", Tags: []string{"mouse", "bluetooth"},
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "3", Name: "MacBook Pro M3", Description: "Portátil profesional",
			Price: 219999, Stock: 0, Rating: 4.9, ReviewCount: 80, Brand: "Apple",
			CategoryID: "c1", CategoryName: "Laptops", Tags: []string{"apple silicon"},
			CreatedAt: base.Add(48 * time.Hour),
		},
	}
}

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func sortBy(field domain.SortField, dir domain.SortDirection) domain.SortOption {
	return domain.SortOption{Field: field, Direction: dir}
}

func TestEngine_SortByNameAndPrice(t *testing.T) {
	e := New(language.Spanish)
	products := []domain.Product{{ID: "b", Name: "B", Price: 10}, {ID: "a", Name: "A", Price: 20}}

	res, err := e.Run(products, domain.DefaultFilterCriteria(), sortBy(domain.SortByName, domain.Asc), pagination.DefaultRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(res.Items))

	res, err = e.Run(products, domain.DefaultFilterCriteria(), sortBy(domain.SortByPrice, domain.Desc), pagination.DefaultRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.Items[0].Price)
	assert.Equal(t, int64(10), res.Items[1].Price)
}

func TestEngine_SortIsLocaleAware(t *testing.T) {
	e := New(language.Spanish)
	products := []domain.Product{{Name: "zapato"}, {Name: "Árbol"}, {Name: "ñandú"}, {Name: "nube"}}

	e.Sort(products, sortBy(domain.SortByName, domain.Asc))

	assert.Equal(t, []string{"Árbol", "nube", "ñandú", "zapato"}, names(products))
}

func TestEngine_SortIsStable(t *testing.T) {
	e := New(language.Spanish)
	products := []domain.Product{
		{ID: "1", Name: "x", Price: 5},
		{ID: "2", Name: "y", Price: 5},
		{ID: "3", Name: "z", Price: 1},
		{ID: "4", Name: "w", Price: 5},
	}

	asc := append([]domain.Product(nil), products...)
	e.Sort(asc, sortBy(domain.SortByPrice, domain.Asc))
	assert.Equal(t, []string{"z", "x", "y", "w"}, names(asc))

	desc := append([]domain.Product(nil), products...)
	e.Sort(desc, sortBy(domain.SortByPrice, domain.Desc))
	assert.Equal(t, []string{"x", "y", "w", "z"}, names(desc))
}

func TestEngine_SortFields(t *testing.T) {
	e := New(language.Spanish)

	tests := []struct {
		opt  domain.SortOption
		want []string
	}{
		{sortBy(domain.SortByCreatedAt, domain.Desc), []string{"3", "2", "1"}},
		{sortBy(domain.SortByRating, domain.Desc), []string{"3", "2", "1"}},
		{sortBy(domain.SortByPopularity, domain.Desc), []string{"2", "1", "3"}},
		{sortBy(domain.SortByPrice, domain.Asc), []string{"2", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.opt.Field, tt.opt.Direction), func(t *testing.T) {
			out, err := e.Apply(catalog(), domain.DefaultFilterCriteria(), tt.opt)
			require.NoError(t, err)
			ids := make([]string, len(out))
			for i, p := range out {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEngine_Filter(t *testing.T) {
	e := New(language.Spanish)

	tests := []struct {
		name   string
		mutate func(f *domain.FilterCriteria)
		want   []string
	}{
		{"defaults match all", func(*domain.FilterCriteria) {}, []string{"1", "2", "3"}},
		{"category", func(f *domain.FilterCriteria) { f.CategoryIDs = []string{"c1"} }, []string{"1", "3"}},
		{"brand", func(f *domain.FilterCriteria) { f.Brands = []string{"Logitech", "Apple"} }, []string{"2", "3"}},
		{"price range", func(f *domain.FilterCriteria) { f.PriceMin, f.PriceMax = 10000, 200000 }, []string{"1"}},
		{"inverted range", func(f *domain.FilterCriteria) { f.PriceMin, f.PriceMax = 200000, 10000 }, []string{}},
		{"in stock", func(f *domain.FilterCriteria) { f.InStockOnly = true }, []string{"1", "2"}},
		{"min rating", func(f *domain.FilterCriteria) { f.MinRating = 4.8 }, []string{"2", "3"}},
		{"search category name", func(f *domain.FilterCriteria) { f.SearchTerm = "laptop" }, []string{"1", "3"}},
		{"search description", func(f *domain.FilterCriteria) { f.SearchTerm = "ERGONÓMICO" }, []string{"2"}},
		{"search tag", func(f *domain.FilterCriteria) { f.SearchTerm = "silicon" }, []string{"3"}},
		{"search trims", func(f *domain.FilterCriteria) { f.SearchTerm = "  dell  " }, []string{"1"}},
		{"combined", func(f *domain.FilterCriteria) {
			f.CategoryIDs = []string{"c1"}
			f.InStockOnly = true
		}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.DefaultFilterCriteria()
			tt.mutate(&f)

			out := e.Filter(catalog(), f)
			ids := make([]string, 0, len(out))
			for _, p := range out {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	e := New(language.Spanish)
	in := catalog()

	_, err := e.Run(in, domain.DefaultFilterCriteria(), sortBy(domain.SortByPrice, domain.Desc), pagination.DefaultRequest())
	require.NoError(t, err)

	assert.Equal(t, catalog(), in)
}

func TestEngine_Pagination(t *testing.T) {
	e := New(language.Spanish)
	products := make([]domain.Product, 25)
	for i := range products {
		products[i] = domain.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("item %02d", i)}
	}

	res, err := e.Run(products, domain.DefaultFilterCriteria(), domain.DefaultSortOption(), pagination.Request{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, 25, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.False(t, res.HasNext)

	res, err = e.Run(products, domain.DefaultFilterCriteria(), domain.DefaultSortOption(), pagination.Request{Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 25, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
}

func TestEngine_PageFarPastTheEnd(t *testing.T) {
	e := New(language.Spanish)

	res, err := e.Run(catalog(), domain.DefaultFilterCriteria(), domain.DefaultSortOption(), pagination.Request{Page: 1<<57 + 1, PageSize: 100})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, len(catalog()), res.TotalItems)
	assert.Equal(t, 1, res.TotalPages)
}

func TestEngine_RejectsInvalidInput(t *testing.T) {
	e := New(language.Spanish)

	_, err := e.Run(catalog(), domain.DefaultFilterCriteria(), domain.DefaultSortOption(), pagination.Request{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = e.Run(catalog(), domain.DefaultFilterCriteria(), domain.DefaultSortOption(), pagination.Request{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = e.Run(catalog(), domain.DefaultFilterCriteria(), sortBy("weight", domain.Asc), pagination.DefaultRequest())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEngine_Categories(t *testing.T) {
	e := New(language.Spanish)

	got := e.Categories(catalog())

	assert.Equal(t, []domain.CategorySummary{
		{ID: "c1", Name: "Laptops", Count: 2},
		{ID: "c2", Name: "Periféricos", Count: 1},
	}, got)
}
