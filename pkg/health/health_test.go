package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readiness(t *testing.T, h *Handler) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	h.ReadinessHandler().ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLivenessHandler_AlwaysReturns200(t *testing.T) {
	h := NewHandler()
	h.Register("storage", func(ctx context.Context) error { return fmt.Errorf("down") })
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	h.LivenessHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReadinessHandler_NoCheckers(t *testing.T) {
	code, resp := readiness(t, NewHandler())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
}

func TestReadinessHandler_AllUp(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("storage", func(ctx context.Context) error { return nil })
	h.RegisterNonCritical("catalog", func(ctx context.Context) error { return nil })

	code, resp := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["storage"].Status)
	assert.Equal(t, StatusUp, resp.Checks["catalog"].Status)
}

func TestReadinessHandler_NonCriticalDown_ReturnsDegraded200(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("storage", func(ctx context.Context) error { return nil })
	h.RegisterNonCritical("catalog", func(ctx context.Context) error { return fmt.Errorf("catalog unreachable") })

	code, resp := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.True(t, resp.Checks["storage"].Critical)
	assert.False(t, resp.Checks["catalog"].Critical)
	assert.Equal(t, "catalog unreachable", resp.Checks["catalog"].Error)
}

func TestReadinessHandler_CriticalDown_Returns503(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("storage", func(ctx context.Context) error { return fmt.Errorf("connection refused") })
	h.RegisterNonCritical("catalog", func(ctx context.Context) error { return fmt.Errorf("timeout") })

	code, resp := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, StatusDown, resp.Checks["storage"].Status)
}

func TestRegister_IsCriticalByDefault(t *testing.T) {
	h := NewHandler()
	h.Register("storage", func(ctx context.Context) error { return fmt.Errorf("fail") })

	code, resp := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.True(t, resp.Checks["storage"].Critical)
}

func TestRegister_Overwrite(t *testing.T) {
	h := NewHandler()
	h.Register("storage", func(ctx context.Context) error { return fmt.Errorf("fail") })
	h.Register("storage", func(ctx context.Context) error { return nil })

	code, resp := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Checks["storage"].Status)
}
