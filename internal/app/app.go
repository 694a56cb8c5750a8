package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/devHenao/ventasPro/internal/auth"
	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/catalog/memory"
	"github.com/devHenao/ventasPro/internal/catalog/remote"
	"github.com/devHenao/ventasPro/internal/config"
	"github.com/devHenao/ventasPro/internal/domain"
	handler "github.com/devHenao/ventasPro/internal/handler/http"
	"github.com/devHenao/ventasPro/internal/persistence"
	"github.com/devHenao/ventasPro/internal/query"
	"github.com/devHenao/ventasPro/internal/repository"
	"github.com/devHenao/ventasPro/internal/service"
	"github.com/devHenao/ventasPro/internal/storage"
	memstore "github.com/devHenao/ventasPro/internal/storage/memory"
	redisstore "github.com/devHenao/ventasPro/internal/storage/redis"
	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/health"
	"github.com/devHenao/ventasPro/pkg/httpclient"
	"github.com/devHenao/ventasPro/pkg/logger"
	"github.com/devHenao/ventasPro/pkg/middleware"
	"github.com/devHenao/ventasPro/pkg/tracing"
)

const (
	serviceName        = "storefront"
	slowRedisThreshold = 50 * time.Millisecond
	catalogMaxAge      = 300
)

// closer drains one persistence bridge.
type closer interface {
	Key() string
	Close(ctx context.Context) error
}

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *goredis.Client
	storefront     *store.Storefront
	bridges        []closer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// Persisted state is restored before the HTTP server is created.
func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: log}

	tcfg := tracing.DefaultConfig(serviceName)
	tcfg.Environment = cfg.Environment
	tcfg.OTLPEndpoint = cfg.OTLPEndpoint
	tcfg.SampleRate = cfg.TracingSampleRate
	tcfg.Enabled = cfg.TracingEnabled
	shutdown, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	healthHandler := health.NewHandler()

	kv, err := a.openStorage(ctx, healthHandler)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}

	a.storefront = a.restoreState(ctx, kv)

	source, products, categories := a.openCatalog(healthHandler)
	engine := query.New(cfg.LanguageTag())
	catalogService := service.NewCatalogService(source, engine, logger.Component(log, "catalog"))
	adminService := service.NewAdminService(products, categories, a.storefront, logger.Component(log, "admin"))

	router := handler.NewRouter(handler.Deps{
		Storefront:    a.storefront,
		Catalog:       catalogService,
		Admin:         adminService,
		Health:        healthHandler,
		CORS:          middleware.DefaultCORSConfig(cfg.CORSOrigins...),
		CatalogMaxAge: catalogMaxAge,
	}, log)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// openStorage connects the durable store selected by configuration.
func (a *App) openStorage(ctx context.Context, h *health.Handler) (storage.Store, error) {
	var kv storage.Store

	switch a.cfg.StorageBackend {
	case config.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, redisstore.Config{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPass,
			DB:       a.cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		rdb.AddHook(redisstore.NewTracingHook(logger.Component(a.logger, "redis"), slowRedisThreshold))
		a.rdb = rdb
		kv = redisstore.New(rdb, a.cfg.StorageKeyPrefix)
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.RedisAddr),
			slog.Int("db", a.cfg.RedisDB),
		)
	default:
		kv = memstore.New(a.cfg.StorageQuota)
		a.logger.Info("using in-memory storage", slog.Int64("quota_bytes", a.cfg.StorageQuota))
	}

	h.RegisterCritical("storage", kv.Ping)
	return kv, nil
}

// restoreState hydrates every persisted store and attaches the bridges that
// keep storage in sync from now on.
func (a *App) restoreState(ctx context.Context, kv storage.Store) *store.Storefront {
	opts := []persistence.Option{
		persistence.WithMinInterval(a.cfg.PersistMinInterval),
		persistence.WithWriteTimeout(a.cfg.PersistWriteTimeout),
	}
	plog := logger.Component(a.logger, "persistence")

	cartBridge := persistence.New(kv, storage.CartKey, domain.EmptyCart, plog, opts...)
	favoritesBridge := persistence.New(kv, storage.FavoritesKey, func() []string { return []string{} }, plog, opts...)
	authBridge := persistence.New(kv, storage.AuthKey, func() domain.Session { return domain.Session{} }, plog, opts...).
		DeleteWhen(domain.Session.IsZero)

	storeLog := logger.Component(a.logger, "store")
	filters := store.NewFilterCriteriaStore(storeLog)
	sf := &store.Storefront{
		Cart:      store.NewCartStore(cartBridge.Hydrate(ctx), storeLog),
		Favorites: store.NewFavoritesStore(favoritesBridge.Hydrate(ctx), storeLog),
		Filters:   filters,
		Browse:    store.NewBrowseStore(filters, a.cfg.DefaultPageSize, storeLog),
		Session:   auth.NewManager(authBridge.Hydrate(ctx), logger.Component(a.logger, "auth")),
	}

	cartBridge.Attach(sf.Cart.State())
	favoritesBridge.Attach(sf.Favorites.State())
	authBridge.Attach(sf.Session.State())
	a.bridges = []closer{cartBridge, favoritesBridge, authBridge}

	a.logger.Info("storefront state restored",
		slog.Int("cart_lines", len(sf.Cart.Cart().Items)),
		slog.Int("favorites", sf.Favorites.Count().Get()),
	)
	return sf
}

// openCatalog builds the catalog source and the admin repositories.
func (a *App) openCatalog(h *health.Handler) (catalog.Source, repository.ProductRepository, repository.CategoryRepository) {
	if a.cfg.CatalogSource != config.CatalogRemote {
		products := memory.NewProductRepository(memory.SeedProducts()...)
		categories := memory.NewCategoryRepository(memory.SeedCategories()...)
		a.logger.Info("using local catalog", slog.Int("products", len(memory.SeedProducts())))
		return memory.NewSource(products, categories), products, categories
	}

	hcfg := httpclient.DefaultConfig()
	hcfg.Timeout = a.cfg.CatalogTimeout
	hcfg.MaxRetries = a.cfg.CatalogMaxRetries
	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(hcfg),
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger.Component(a.logger, "catalog-client"),
	)
	client := remote.NewClient(breaker, a.cfg.CatalogBaseURL, logger.Component(a.logger, "catalog-client"))

	h.RegisterNonCritical("catalog", func(context.Context) error {
		if breaker.State() == gobreaker.StateOpen {
			return httpclient.ErrCircuitOpen
		}
		return nil
	})

	a.logger.Info("using remote catalog",
		slog.String("base_url", a.cfg.CatalogBaseURL),
		slog.String("mode", a.cfg.CatalogRemoteMode),
	)
	return remote.NewSource(client, remote.Mode(a.cfg.CatalogRemoteMode)),
		remote.NewProductRepository(client),
		remote.NewCategoryRepository(client)
}

// Handler returns the HTTP handler of the application.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Storefront returns the restored state.
func (a *App) Storefront() *store.Storefront {
	return a.storefront
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. Pending state writes are flushed
// after the HTTP server has stopped accepting changes.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.storefront.Browse.Close()
	for _, b := range a.bridges {
		if err := b.Close(shutdownCtx); err != nil {
			a.logger.Error("persistence flush error",
				slog.String("storage_key", b.Key()),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
