package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devHenao/ventasPro/internal/service"
	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/health"
	"github.com/devHenao/ventasPro/pkg/middleware"
)

const serviceName = "storefront"

// Deps groups what the router needs to build its handlers.
type Deps struct {
	Storefront *store.Storefront
	Catalog    *service.CatalogService
	Admin      *service.AdminService
	Health     *health.Handler
	CORS       middleware.CORSConfig
	// CatalogMaxAge is the Cache-Control max-age for category and sort
	// option listings, in seconds.
	CatalogMaxAge int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.CORS(deps.CORS))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Storefront, logger)
	filterHandler := NewFilterHandler(deps.Storefront, logger)
	cartHandler := NewCartHandler(deps.Catalog, deps.Storefront, logger)
	favoritesHandler := NewFavoritesHandler(deps.Storefront, logger)
	sessionHandler := NewSessionHandler(deps.Storefront, logger)
	adminHandler := NewAdminHandler(deps.Admin, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(deps.CatalogMaxAge))
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/sort-options", catalogHandler.SortOptions)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)

			r.Route("/filters", func(r chi.Router) {
				r.Get("/", filterHandler.Get)
				r.Delete("/", filterHandler.Clear)
				r.Put("/price", filterHandler.SetPriceRange)
				r.Put("/in-stock", filterHandler.SetInStockOnly)
				r.Put("/min-rating", filterHandler.SetMinRating)
				r.Put("/search", filterHandler.SetSearchTerm)
				r.Post("/categories/{id}/toggle", filterHandler.ToggleCategory)
				r.Post("/brands/{brand}/toggle", filterHandler.ToggleBrand)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)

				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
				r.Put("/items/{productId}/{variantId}", cartHandler.UpdateItemQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
				r.Delete("/items/{productId}/{variantId}", cartHandler.RemoveItem)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", favoritesHandler.List)
				r.Delete("/", favoritesHandler.Clear)
				r.Put("/{productId}", favoritesHandler.Add)
				r.Delete("/{productId}", favoritesHandler.Remove)
				r.Post("/{productId}/toggle", favoritesHandler.Toggle)
			})

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.With(middleware.BearerToken).Post("/", sessionHandler.SignIn)
				r.Delete("/", sessionHandler.SignOut)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(SessionUser(deps.Storefront))

				r.Get("/products", adminHandler.ListProducts)
				r.Post("/products", adminHandler.CreateProduct)
				r.Put("/products/{id}", adminHandler.UpdateProduct)
				r.Delete("/products/{id}", adminHandler.DeleteProduct)

				r.Get("/categories", adminHandler.ListCategories)
				r.Post("/categories", adminHandler.CreateCategory)
				r.Put("/categories/{id}", adminHandler.UpdateCategory)
				r.Delete("/categories/{id}", adminHandler.DeleteCategory)
			})
		})
	})

	return r
}
