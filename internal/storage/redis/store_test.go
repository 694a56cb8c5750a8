package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/devHenao/ventasPro/internal/storage"
)

var _ storage.Store = (*Store)(nil)

func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "ventaspro:"), mr, client
}

func TestStore_SetWritesPrefixedKeyWithoutTTL(t *testing.T) {
	s, mr, _ := setupTestRedis(t)

	require.NoError(t, s.Set(context.Background(), storage.CartKey, `{"items":[]}`))

	got, err := mr.Get("ventaspro:cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)
	assert.Zero(t, mr.TTL("ventaspro:cart"))
}

func TestStore_GetAbsent(t *testing.T) {
	s, _, _ := setupTestRedis(t)

	v, ok, err := s.Get(context.Background(), storage.FavoritesKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_GetPresent(t *testing.T) {
	s, mr, _ := setupTestRedis(t)
	require.NoError(t, mr.Set("ventaspro:favorites", `["p1","p2"]`))

	v, ok, err := s.Get(context.Background(), storage.FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["p1","p2"]`, v)
}

func TestStore_Delete(t *testing.T) {
	s, mr, _ := setupTestRedis(t)
	require.NoError(t, mr.Set("ventaspro:auth", "x"))

	require.NoError(t, s.Delete(context.Background(), storage.AuthKey))
	assert.False(t, mr.Exists("ventaspro:auth"))
}

func TestStore_ConnectionError(t *testing.T) {
	s, mr, _ := setupTestRedis(t)
	mr.Close()

	_, _, err := s.Get(context.Background(), storage.CartKey)
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), storage.CartKey, "{}"))
	assert.Error(t, s.Ping(context.Background()))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), Config{Addr: mr.Addr()})
	assert.ErrorContains(t, err, "ping redis")
}

func TestTracingHook_RecordsSpans(t *testing.T) {
	s, _, client := setupTestRedis(t)

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	hook := NewTracingHook(nil, 0)
	hook.tracer = tp.Tracer(tracerName)
	client.AddHook(hook)

	require.NoError(t, s.Set(context.Background(), storage.CartKey, "{}"))
	_, _, err := s.Get(context.Background(), storage.FavoritesKey)
	require.NoError(t, err)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "redis.SET")
	assert.Contains(t, names, "redis.GET")
}
