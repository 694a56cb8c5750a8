package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/logger"
	"github.com/devHenao/ventasPro/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteData_WrapsInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, map[string]int{"count": 2})

	var body map[string]map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body["data"]["count"])
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/p-9", nil)

	WriteError(rec, req, apperrors.NotFound("product", "p-9"), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "p-9")
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, fmt.Errorf("lookup: %w", apperrors.ErrNotFound), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestWriteError_ServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, apperrors.ServiceUnavailable("catalog unreachable", fmt.Errorf("dial tcp")), testLogger())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decode(t, rec).Error.Code)
}

func TestWriteError_UnknownError_Returns500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, fmt.Errorf("boom"), testLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "boom")
}

func TestWriteError_ValidationErrorKeepsFields(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}
	err := validator.Validate(input{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	WriteError(rec, req, err, testLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["Name"])
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "req-42")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.InvalidInput("bad"), testLogger())

	assert.Equal(t, "req-42", decode(t, rec).Error.RequestID)
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(Response{Data: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "error")

	b, err = json.Marshal(Response{Error: &ErrorResponse{Code: "C", Message: "m"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "data")
	assert.NotContains(t, string(b), "request_id")
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 25, 1, 10)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)

	last := NewPaginatedResponse([]string{"a"}, 21, 3, 10)
	assert.False(t, last.HasNext)

	empty := NewPaginatedResponse[string](nil, 0, 1, 10)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestNewPaginatedResponse_JSONKeys(t *testing.T) {
	b, err := json.Marshal(NewPaginatedResponse([]int{1}, 1, 1, 10))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"data", "total_count", "page", "per_page", "total_pages", "has_next"} {
		assert.Contains(t, m, key)
	}
}
