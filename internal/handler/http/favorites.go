package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/httputil"
)

// FavoritesHandler exposes the favorites store.
type FavoritesHandler struct {
	sf     *store.Storefront
	logger *slog.Logger
}

// NewFavoritesHandler creates a new favorites HTTP handler.
func NewFavoritesHandler(sf *store.Storefront, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{sf: sf, logger: logger}
}

type favoritesResponse struct {
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
	Favorite   *bool    `json:"favorite,omitempty"`
}

// List handles GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respond(w, func(*store.FavoritesStore) {})
}

// Clear handles DELETE /api/v1/favorites
func (h *FavoritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, (*store.FavoritesStore).Clear)
}

// Add handles PUT /api/v1/favorites/{productId}
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	h.respond(w, func(f *store.FavoritesStore) { f.Add(id) })
}

// Remove handles DELETE /api/v1/favorites/{productId}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	h.respond(w, func(f *store.FavoritesStore) { f.Remove(id) })
}

// Toggle handles POST /api/v1/favorites/{productId}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	var resp favoritesResponse
	h.sf.With(func() {
		fav := h.sf.Favorites.Toggle(id)
		resp = h.snapshot()
		resp.Favorite = &fav
	})
	httputil.WriteData(w, http.StatusOK, resp)
}

func (h *FavoritesHandler) respond(w http.ResponseWriter, mutate func(*store.FavoritesStore)) {
	var resp favoritesResponse
	h.sf.With(func() {
		mutate(h.sf.Favorites)
		resp = h.snapshot()
	})
	httputil.WriteData(w, http.StatusOK, resp)
}

// snapshot must run under the storefront lock.
func (h *FavoritesHandler) snapshot() favoritesResponse {
	return favoritesResponse{
		ProductIDs: h.sf.Favorites.IDs(),
		Count:      h.sf.Favorites.Count().Get(),
	}
}
