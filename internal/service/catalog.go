package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/devHenao/ventasPro/internal/catalog"
	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/query"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/pagination"
	"github.com/devHenao/ventasPro/pkg/tracing"
	"github.com/devHenao/ventasPro/pkg/validator"
)

const tracerName = "github.com/devHenao/ventasPro/internal/service"

var (
	catalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "Total number of catalog source fetches.",
		},
		[]string{"operation", "result"},
	)

	catalogFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of catalog source fetches in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Listing is one page of the catalog as shown to the shopper. When the
// source fails the listing is empty and Degraded is set; Retryable tells the
// shopper whether trying again can help.
type Listing struct {
	pagination.Result[domain.Product]
	Degraded  bool   `json:"degraded"`
	Retryable bool   `json:"retryable"`
	Error     string `json:"error,omitempty"`
}

// CatalogService answers catalog queries from a source, running the query
// engine when the source hands back the full collection.
type CatalogService struct {
	source catalog.Source
	engine *query.Engine
	logger *slog.Logger
	tracer trace.Tracer
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source catalog.Source, engine *query.Engine, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		engine: engine,
		logger: logger,
		tracer: tracing.Tracer(tracerName),
	}
}

// List returns the requested page. Invalid page or sort input is an error;
// source failures are not, they yield a degraded empty listing.
func (s *CatalogService) List(ctx context.Context, q catalog.Query) (Listing, error) {
	if err := q.Page.Validate(); err != nil {
		return Listing{}, err
	}
	if err := validator.ValidateInput(q.Sort); err != nil {
		return Listing{}, err
	}

	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(
		attribute.Int("page", q.Page.Page),
		attribute.Int("page_size", q.Page.PageSize),
		attribute.String("sort", string(q.Sort.Field)+":"+string(q.Sort.Direction)),
	))
	defer span.End()

	batch, err := s.fetch(ctx, "list", func(ctx context.Context) (catalog.Batch, error) {
		return s.source.Fetch(ctx, q)
	})
	if err != nil {
		_ = tracing.RecordError(span, err)
		s.logger.WarnContext(ctx, "catalog unavailable, serving empty listing",
			slog.String("error", err.Error()),
		)
		return Listing{
			Result:    pagination.Empty[domain.Product](q.Page),
			Degraded:  true,
			Retryable: isRetryable(err),
			Error:     "el catálogo no está disponible",
		}, nil
	}

	if batch.Paged {
		span.SetAttributes(attribute.Bool("catalog.paged", true))
		return Listing{Result: pagination.NewResult(batch.Products, batch.TotalItems, q.Page)}, nil
	}

	res, err := s.engine.Run(batch.Products, q.Criteria, q.Sort, q.Page)
	if err != nil {
		return Listing{}, tracing.RecordError(span, err)
	}
	span.SetAttributes(attribute.Int("catalog.total_items", res.TotalItems))
	return Listing{Result: res}, nil
}

// Product returns a single product. Not-found is reported as such.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	ctx, span := s.tracer.Start(ctx, "CatalogService.Product", trace.WithAttributes(
		attribute.String("product_id", id),
	))
	defer span.End()

	start := time.Now()
	p, err := s.source.Get(ctx, id)
	s.observe("get", start, err)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			_ = tracing.RecordError(span, err)
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// Categories lists the active categories with the number of catalog products
// in each. Counts fall back to zero when products cannot be loaded.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	start := time.Now()
	cats, err := s.source.Categories(ctx)
	s.observe("categories", start, err)
	if err != nil {
		return nil, tracing.RecordError(span, fmt.Errorf("list categories: %w", err))
	}

	counts := make(map[string]int)
	batch, err := s.fetch(ctx, "list", func(ctx context.Context) (catalog.Batch, error) {
		return s.source.Fetch(ctx, catalog.Query{
			Criteria: domain.DefaultFilterCriteria(),
			Sort:     domain.DefaultSortOption(),
			Page:     pagination.Request{Page: 1, PageSize: pagination.MaxPageSize},
		})
	})
	if err != nil {
		s.logger.WarnContext(ctx, "category counts unavailable", slog.String("error", err.Error()))
	} else {
		for _, c := range s.engine.Categories(batch.Products) {
			counts[c.ID] = c.Count
		}
	}

	out := make([]domain.CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, domain.CategorySummary{ID: c.ID, Name: c.Name, Count: counts[c.ID]})
	}
	return out, nil
}

func (s *CatalogService) fetch(ctx context.Context, op string, fn func(context.Context) (catalog.Batch, error)) (catalog.Batch, error) {
	start := time.Now()
	batch, err := fn(ctx)
	s.observe(op, start, err)
	return batch, err
}

func (s *CatalogService) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		result = "not_found"
	default:
		result = "error"
	}
	catalogFetchesTotal.WithLabelValues(op, result).Inc()
	catalogFetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// isRetryable reports whether a failed fetch may succeed when repeated.
func isRetryable(err error) bool {
	return !errors.Is(err, apperrors.ErrInvalidInput) &&
		!errors.Is(err, apperrors.ErrUnauthorized) &&
		!errors.Is(err, apperrors.ErrForbidden)
}
