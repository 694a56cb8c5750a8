package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/service"
	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// CartHandler exposes the cart store.
type CartHandler struct {
	catalog *service.CatalogService
	sf      *store.Storefront
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CatalogService, sf *store.Storefront, logger *slog.Logger) *CartHandler {
	return &CartHandler{catalog: svc, sf: sf, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding one unit of a product.
// Name, price and stock are taken from the catalog.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
}

// UpdateQuantityRequest is the JSON request body for setting a line quantity.
// A quantity below 1 removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, func(*store.CartStore) {})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	p, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	candidate := p.Candidate(req.VariantID)
	h.respond(w, func(c *store.CartStore) { c.AddItem(candidate) })
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}[/{variantId}]
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	productID, variantID := lineKey(r)
	h.respond(w, func(c *store.CartStore) { c.UpdateQuantity(productID, variantID, *req.Quantity) })
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}[/{variantId}]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, variantID := lineKey(r)
	h.respond(w, func(c *store.CartStore) { c.RemoveItem(productID, variantID) })
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, (*store.CartStore).Clear)
}

func (h *CartHandler) respond(w http.ResponseWriter, mutate func(*store.CartStore)) {
	var cart domain.Cart
	h.sf.With(func() {
		mutate(h.sf.Cart)
		cart = h.sf.Cart.Cart()
	})
	httputil.WriteData(w, http.StatusOK, cart)
}

// lineKey reads the line identity from the path. Products without variants
// use the shorter route and an empty variant ID.
func lineKey(r *http.Request) (productID, variantID string) {
	return chi.URLParam(r, "productId"), chi.URLParam(r, "variantId")
}
