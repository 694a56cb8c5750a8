package pagination

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestDefaultRequest(t *testing.T) {
	r := DefaultRequest()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 12, r.PageSize)
	assert.Equal(t, 0, r.Offset())
}

func TestFromRequest_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	p, err := FromRequest(req, DefaultRequest())

	require.NoError(t, err)
	assert.Equal(t, DefaultRequest(), p)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=3&page_size=50", nil)
	p, err := FromRequest(req, DefaultRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, 100, p.Offset())
}

func TestFromRequest_PageSizeCapped(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page_size=500", nil)
	p, err := FromRequest(req, DefaultRequest())

	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestFromRequest_NotANumber(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=abc", nil)
	_, err := FromRequest(req, DefaultRequest())
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestFromRequest_ZeroPassesThroughToValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page_size=0", nil)
	p, err := FromRequest(req, DefaultRequest())

	require.NoError(t, err)
	assert.Error(t, p.Validate())
}

// ============================================================================
// Paginate
// ============================================================================

func TestPaginate_LastPartialPage(t *testing.T) {
	res, err := Paginate(seq(25), Request{Page: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, res.Items)
	assert.Equal(t, 25, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestPaginate_FirstPage(t *testing.T) {
	res, err := Paginate(seq(25), Request{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestPaginate_OutOfRangePage(t *testing.T) {
	res, err := Paginate(seq(25), Request{Page: 9, PageSize: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 25, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
}

func TestPaginate_HugePageNumber(t *testing.T) {
	res, err := Paginate(seq(25), Request{Page: 1<<57 + 1, PageSize: 100})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 25, res.TotalItems)
	assert.False(t, res.HasNext)
}

func TestPaginate_HugePageSize(t *testing.T) {
	res, err := Paginate(seq(25), Request{Page: 1, PageSize: math.MaxInt})

	require.NoError(t, err)
	assert.Len(t, res.Items, 25)
	assert.Equal(t, 1, res.TotalPages)
}

func TestOffset_Saturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Request{Page: 1<<57 + 1, PageSize: 100}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt, PageSize: math.MaxInt}.Offset())
	assert.Equal(t, 20, Request{Page: 3, PageSize: 10}.Offset())
}

func TestPaginate_EmptyInput(t *testing.T) {
	res, err := Paginate([]int{}, Request{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		_, err := Paginate(seq(3), Request{Page: 1, PageSize: size})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "size %d", size)
	}
}

func TestPaginate_InvalidPageNumber(t *testing.T) {
	_, err := Paginate(seq(3), Request{Page: 0, PageSize: 2})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	all := seq(5)
	res, err := Paginate(all, Request{Page: 1, PageSize: 2})
	require.NoError(t, err)

	res.Items[0] = 99
	assert.Equal(t, 1, all[0])
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
