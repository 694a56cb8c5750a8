package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/service"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// AdminHandler exposes catalog management. Every call is authorized with the
// credential of the current session.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// ListProducts handles GET /api/v1/admin/products
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category_id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/v1/admin/categories
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context(), r.URL.Query().Get("parent_id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cats)
}

// CreateCategory handles POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	c, err := h.service.CreateCategory(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, c)
}

// UpdateCategory handles PUT /api/v1/admin/categories/{id}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	c, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, c)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{id}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
