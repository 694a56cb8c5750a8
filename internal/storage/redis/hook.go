package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/devHenao/ventasPro/internal/storage/redis"

// TracingHook opens a client span per Redis command and logs commands slower
// than a threshold. A zero threshold disables slow command logging.
type TracingHook struct {
	tracer    trace.Tracer
	threshold time.Duration
	logger    *slog.Logger
}

var _ redis.Hook = (*TracingHook)(nil)

// NewTracingHook creates a hook. Install it with client.AddHook.
func NewTracingHook(logger *slog.Logger, slowThreshold time.Duration) *TracingHook {
	return &TracingHook{
		tracer:    otel.Tracer(tracerName),
		threshold: slowThreshold,
		logger:    logger,
	}
}

// DialHook passes dials through untouched.
func (h *TracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

// ProcessHook traces a single command.
func (h *TracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		name := strings.ToUpper(cmd.Name())
		ctx, end := h.start(ctx, name)
		err := next(ctx, cmd)
		end(err)
		return err
	}
}

// ProcessPipelineHook traces a pipeline as one span.
func (h *TracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, end := h.start(ctx, "PIPELINE")
		err := next(ctx, cmds)
		end(err)
		return err
	}
}

func (h *TracingHook) start(ctx context.Context, operation string) (context.Context, func(error)) {
	begin := time.Now()
	ctx, span := h.tracer.Start(ctx, "redis."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
		),
	)

	return ctx, func(err error) {
		if err != nil && !errors.Is(err, redis.Nil) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if h.threshold <= 0 || h.logger == nil {
			return
		}
		if elapsed := time.Since(begin); elapsed >= h.threshold {
			h.logger.WarnContext(ctx, "slow redis command",
				slog.String("operation", operation),
				slog.Duration("duration", elapsed),
			)
		}
	}
}
