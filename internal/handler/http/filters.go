package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// FilterHandler exposes the filter criteria store.
type FilterHandler struct {
	sf     *store.Storefront
	logger *slog.Logger
}

// NewFilterHandler creates a new filter HTTP handler.
func NewFilterHandler(sf *store.Storefront, logger *slog.Logger) *FilterHandler {
	return &FilterHandler{sf: sf, logger: logger}
}

// --- Request DTOs ---

// PriceRangeRequest is the JSON body of PUT /filters/price. An inverted range
// is accepted and matches no product.
type PriceRangeRequest struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"gte=0"`
}

// InStockRequest is the JSON body of PUT /filters/in-stock.
type InStockRequest struct {
	Value bool `json:"value"`
}

// MinRatingRequest is the JSON body of PUT /filters/min-rating.
type MinRatingRequest struct {
	Value float64 `json:"value" validate:"gte=0,lte=5"`
}

// SearchRequest is the JSON body of PUT /filters/search.
type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

type filtersResponse struct {
	Criteria         domain.FilterCriteria `json:"criteria"`
	HasActiveFilters bool                  `json:"has_active_filters"`
}

// --- Handlers ---

// Get handles GET /api/v1/filters
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, func(*store.FilterCriteriaStore) {})
}

// Clear handles DELETE /api/v1/filters
func (h *FilterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, (*store.FilterCriteriaStore).ClearAll)
}

// SetPriceRange handles PUT /api/v1/filters/price
func (h *FilterHandler) SetPriceRange(w http.ResponseWriter, r *http.Request) {
	var req PriceRangeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, func(f *store.FilterCriteriaStore) { f.SetPriceRange(req.Min, req.Max) })
}

// ToggleCategory handles POST /api/v1/filters/categories/{id}/toggle
func (h *FilterHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, func(f *store.FilterCriteriaStore) { f.ToggleCategory(id) })
}

// ToggleBrand handles POST /api/v1/filters/brands/{brand}/toggle
func (h *FilterHandler) ToggleBrand(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")
	h.respond(w, func(f *store.FilterCriteriaStore) { f.ToggleBrand(brand) })
}

// SetInStockOnly handles PUT /api/v1/filters/in-stock
func (h *FilterHandler) SetInStockOnly(w http.ResponseWriter, r *http.Request) {
	var req InStockRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, func(f *store.FilterCriteriaStore) { f.SetInStockOnly(req.Value) })
}

// SetMinRating handles PUT /api/v1/filters/min-rating
func (h *FilterHandler) SetMinRating(w http.ResponseWriter, r *http.Request) {
	var req MinRatingRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, func(f *store.FilterCriteriaStore) { f.SetMinRating(req.Value) })
}

// SetSearchTerm handles PUT /api/v1/filters/search
func (h *FilterHandler) SetSearchTerm(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, func(f *store.FilterCriteriaStore) { f.SetSearchTerm(req.Term) })
}

func (h *FilterHandler) respond(w http.ResponseWriter, mutate func(*store.FilterCriteriaStore)) {
	var resp filtersResponse
	h.sf.With(func() {
		mutate(h.sf.Filters)
		resp.Criteria = h.sf.Filters.Criteria()
		resp.HasActiveFilters = h.sf.Filters.HasActiveFilters().Get()
	})
	httputil.WriteData(w, http.StatusOK, resp)
}
