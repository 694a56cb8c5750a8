// Package persistence mirrors observable state into a storage.Store and
// restores it at startup.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/devHenao/ventasPro/internal/storage"
)

// ErrClosed is returned by Flush after the bridge has been closed with writes
// still pending.
var ErrClosed = errors.New("persistence bridge closed")

var (
	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_writes_total",
			Help: "Total number of state writes to durable storage.",
		},
		[]string{"key", "result"},
	)

	hydrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_hydrations_total",
			Help: "Total number of state hydrations from durable storage.",
		},
		[]string{"key", "result"},
	)
)

// Observable is a value holder that reports changes. *reactive.Cell satisfies it.
type Observable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (cancel func())
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	minInterval  time.Duration
	writeTimeout time.Duration
}

// WithMinInterval sets the minimum spacing between two writes. Changes that
// arrive in between are coalesced and only the latest one is written.
func WithMinInterval(d time.Duration) Option {
	return func(o *options) { o.minInterval = d }
}

// WithWriteTimeout bounds each storage call.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = d }
}

type pendingWrite struct {
	seq     uint64
	payload string
	del     bool
}

// Bridge mirrors one value of type T to a fixed storage key.
//
// Writes happen on a background goroutine. The notification path only encodes
// the value and parks it in a single pending slot, so it never blocks on
// storage and a burst of changes results in one write of the latest value.
type Bridge[T any] struct {
	store      storage.Store
	key        string
	empty      func() T
	deleteWhen func(T) bool
	logger     *slog.Logger
	opts       options
	limiter    *rate.Limiter

	mu       sync.Mutex
	pending  *pendingWrite
	seq      uint64
	written  uint64
	progress chan struct{}
	attached bool
	closed   bool

	wake        chan struct{}
	unsubscribe func()
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
}

// New creates a bridge for key. empty produces the value used when nothing
// usable is stored.
func New[T any](store storage.Store, key string, empty func() T, logger *slog.Logger, opts ...Option) *Bridge[T] {
	o := options{
		minInterval:  50 * time.Millisecond,
		writeTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	limit := rate.Inf
	if o.minInterval > 0 {
		limit = rate.Every(o.minInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge[T]{
		store:    store,
		key:      key,
		empty:    empty,
		logger:   logger.With(slog.String("storage_key", key)),
		opts:     o,
		limiter:  rate.NewLimiter(limit, 1),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// DeleteWhen makes the bridge remove the key instead of writing when fn
// reports true for the new value.
func (b *Bridge[T]) DeleteWhen(fn func(T) bool) *Bridge[T] {
	b.deleteWhen = fn
	return b
}

// Key returns the storage key.
func (b *Bridge[T]) Key() string {
	return b.key
}

// Hydrate reads the stored value. It never fails: absent keys, read errors and
// malformed payloads all yield empty(), the last two being logged.
func (b *Bridge[T]) Hydrate(ctx context.Context) T {
	ctx, cancel := context.WithTimeout(ctx, b.opts.writeTimeout)
	defer cancel()

	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		hydrationsTotal.WithLabelValues(b.key, "error").Inc()
		b.logger.ErrorContext(ctx, "failed to read persisted state", slog.String("error", err.Error()))
		return b.empty()
	}
	if !ok {
		hydrationsTotal.WithLabelValues(b.key, "absent").Inc()
		return b.empty()
	}

	v := b.empty()
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		hydrationsTotal.WithLabelValues(b.key, "corrupt").Inc()
		b.logger.WarnContext(ctx, "discarding malformed persisted state",
			slog.String("error", err.Error()),
			slog.Int("bytes", len(raw)),
		)
		return b.empty()
	}

	hydrationsTotal.WithLabelValues(b.key, "ok").Inc()
	return v
}

// Attach subscribes to obs, starts the writer and schedules a write of the
// current value so storage matches memory even when hydration discarded a
// malformed payload. Attach may be called once.
func (b *Bridge[T]) Attach(obs Observable[T]) {
	b.mu.Lock()
	if b.attached || b.closed {
		b.mu.Unlock()
		return
	}
	b.attached = true
	b.mu.Unlock()

	go b.run()
	b.unsubscribe = obs.Subscribe(b.onChange)
	b.onChange(obs.Get())
}

func (b *Bridge[T]) onChange(v T) {
	w := pendingWrite{del: b.deleteWhen != nil && b.deleteWhen(v)}
	if !w.del {
		data, err := json.Marshal(v)
		if err != nil {
			writesTotal.WithLabelValues(b.key, "error").Inc()
			b.logger.Error("failed to encode state", slog.String("error", err.Error()))
			return
		}
		w.payload = string(data)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.seq++
	w.seq = b.seq
	b.pending = &w
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge[T]) run() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			return
		case <-b.wake:
		}

		if err := b.limiter.Wait(b.ctx); err != nil {
			return
		}

		b.mu.Lock()
		w := b.pending
		b.pending = nil
		b.mu.Unlock()
		if w == nil {
			continue
		}

		b.write(w)

		b.mu.Lock()
		b.written = w.seq
		close(b.progress)
		b.progress = make(chan struct{})
		b.mu.Unlock()
	}
}

func (b *Bridge[T]) write(w *pendingWrite) {
	ctx, cancel := context.WithTimeout(b.ctx, b.opts.writeTimeout)
	defer cancel()

	var err error
	if w.del {
		err = b.store.Delete(ctx, b.key)
	} else {
		err = b.store.Set(ctx, b.key, w.payload)
	}

	switch {
	case err == nil:
		writesTotal.WithLabelValues(b.key, "ok").Inc()
	case errors.Is(err, storage.ErrQuotaExceeded):
		writesTotal.WithLabelValues(b.key, "quota").Inc()
		b.logger.Error("state not persisted, storage quota exceeded",
			slog.Int("bytes", len(w.payload)),
		)
	default:
		writesTotal.WithLabelValues(b.key, "error").Inc()
		b.logger.Error("failed to persist state", slog.String("error", err.Error()))
	}
}

// Flush blocks until every change observed so far has been handed to storage
// or ctx is done. Write failures are logged, not returned.
func (b *Bridge[T]) Flush(ctx context.Context) error {
	for {
		b.mu.Lock()
		if b.written >= b.seq {
			b.mu.Unlock()
			return nil
		}
		if !b.attached || b.closed {
			b.mu.Unlock()
			return ErrClosed
		}
		ch := b.progress
		b.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return fmt.Errorf("flush %s: %w", b.key, ctx.Err())
		}
	}
}

// Close stops observing, drains pending writes within ctx and stops the writer.
// It must not run concurrently with changes to the observed value.
func (b *Bridge[T]) Close(ctx context.Context) error {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}

	b.mu.Lock()
	attached := b.attached
	b.mu.Unlock()

	var err error
	if attached {
		err = b.Flush(ctx)
	}

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cancel()

	if attached {
		<-b.done
	}
	return err
}
