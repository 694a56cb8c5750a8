package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/service"
	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/pagination"
)

// CatalogHandler serves catalog browsing. Sort and page given in the query
// string update the browse state before the listing is computed.
type CatalogHandler struct {
	catalog *service.CatalogService
	sf      *store.Storefront
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, sf *store.Storefront, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: svc, sf: sf, logger: logger}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := h.browse(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	listing, err := h.catalog.List(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, listing)
}

// browse applies query-string overrides and snapshots the current query.
func (h *CatalogHandler) browse(r *http.Request) (catalog.Query, error) {
	var (
		q   catalog.Query
		err error
	)
	h.sf.With(func() {
		browse := h.sf.Browse

		var page pagination.Request
		if page, err = pagination.FromRequest(r, browse.Page()); err != nil {
			return
		}
		if err = browse.SetPagination(page); err != nil {
			return
		}

		if field := r.URL.Query().Get("sort"); field != "" {
			var opt domain.SortOption
			if opt, err = domain.ParseSortOption(field, r.URL.Query().Get("dir")); err != nil {
				return
			}
			if err = browse.SetSort(opt); err != nil {
				return
			}
		}

		q = catalog.Query{
			Criteria: h.sf.Filters.Criteria(),
			Sort:     browse.Sort(),
			Page:     browse.Page(),
		}
	})
	return q, err
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var favorite bool
	h.sf.With(func() { favorite = h.sf.Favorites.Contains(p.ID) })

	httputil.WriteData(w, http.StatusOK, productResponse{Product: *p, Favorite: favorite})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cats)
}

// SortOptions handles GET /api/v1/sort-options
func (h *CatalogHandler) SortOptions(w http.ResponseWriter, r *http.Request) {
	var resp sortOptionsResponse
	h.sf.With(func() {
		resp.Options = h.sf.Browse.SortOptions()
		resp.Current = h.sf.Browse.Sort()
	})
	httputil.WriteData(w, http.StatusOK, resp)
}

type productResponse struct {
	domain.Product
	Favorite bool `json:"favorite"`
}

type sortOptionsResponse struct {
	Options []domain.SortOption `json:"options"`
	Current domain.SortOption   `json:"current"`
}
