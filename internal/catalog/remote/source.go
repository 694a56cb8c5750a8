package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/pkg/httputil"
)

// Mode selects how the source asks the upstream for products.
type Mode string

const (
	// ModePage forwards criteria, sort and page, and trusts the upstream page.
	ModePage Mode = "page"
	// ModeFull downloads every product and lets the query engine do the rest.
	ModeFull Mode = "full"
)

var _ catalog.Source = (*Source)(nil)

// Source is a catalog.Source backed by the HTTP upstream.
type Source struct {
	client *Client
	mode   Mode
}

// NewSource creates a remote source.
func NewSource(client *Client, mode Mode) *Source {
	if mode != ModeFull {
		mode = ModePage
	}
	return &Source{client: client, mode: mode}
}

// Fetch requests products from the upstream.
func (s *Source) Fetch(ctx context.Context, q catalog.Query) (catalog.Batch, error) {
	if s.mode == ModeFull {
		var res envelope[[]domain.Product]
		if err := s.client.call(ctx, http.MethodGet, "/products", nil, nil, &res); err != nil {
			return catalog.Batch{}, err
		}
		return catalog.Batch{Products: nonNil(res.Data)}, nil
	}

	// An inverted price range matches nothing.
	if q.Criteria.PriceMin > q.Criteria.PriceMax {
		return catalog.Batch{Products: []domain.Product{}, Paged: true}, nil
	}

	var res httputil.PaginatedResponse[domain.Product]
	if err := s.client.call(ctx, http.MethodGet, "/products", queryParams(q), nil, &res); err != nil {
		return catalog.Batch{}, err
	}
	return catalog.Batch{
		Products:   nonNil(res.Data),
		Paged:      true,
		TotalItems: res.TotalCount,
	}, nil
}

// Get fetches a single product.
func (s *Source) Get(ctx context.Context, id string) (*domain.Product, error) {
	var res envelope[domain.Product]
	if err := s.client.call(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Categories fetches the category list.
func (s *Source) Categories(ctx context.Context) ([]domain.Category, error) {
	var res envelope[[]domain.Category]
	if err := s.client.call(ctx, http.MethodGet, "/categories", nil, nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []domain.Category{}, nil
	}
	return res.Data, nil
}

func queryParams(q catalog.Query) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page.Page))
	v.Set("page_size", strconv.Itoa(q.Page.PageSize))
	if q.Sort.Field != "" {
		v.Set("sort", string(q.Sort.Field))
		v.Set("dir", string(q.Sort.Direction))
	}

	c := q.Criteria
	for _, id := range c.CategoryIDs {
		v.Add("category_id", id)
	}
	for _, b := range c.Brands {
		v.Add("brand", b)
	}
	if c.PriceBounded() {
		v.Set("min_price", strconv.FormatInt(c.PriceMin, 10))
		v.Set("max_price", strconv.FormatInt(c.PriceMax, 10))
	}
	if c.InStockOnly {
		v.Set("in_stock", "true")
	}
	if c.MinRating > 0 {
		v.Set("min_rating", strconv.FormatFloat(c.MinRating, 'f', -1, 64))
	}
	if term := c.Search(); term != "" {
		v.Set("search", term)
	}
	return v
}

func nonNil(ps []domain.Product) []domain.Product {
	if ps == nil {
		return []domain.Product{}
	}
	return ps
}
