package pagination

import (
	"math"
	"net/http"
	"strconv"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

// DefaultPageSize matches the storefront grid of four columns by three rows.
const DefaultPageSize = 12

// MaxPageSize bounds page sizes accepted from query strings.
const MaxPageSize = 100

// Request holds a 1-based page request.
type Request struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultRequest returns the first page with the default page size.
func DefaultRequest() Request {
	return Request{Page: 1, PageSize: DefaultPageSize}
}

// Offset returns the index of the first item of the page. Offsets that do not
// fit in an int saturate at math.MaxInt, which lies past the end of any slice.
func (r Request) Offset() int {
	if r.Page <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// Validate rejects page requests that violate the input contract. Pages past
// the end are valid; they simply yield no items.
func (r Request) Validate() error {
	if r.PageSize <= 0 {
		return apperrors.InvalidInput("page size must be at least 1")
	}
	if r.Page < 1 {
		return apperrors.InvalidInput("page number must be at least 1")
	}
	return nil
}

// FromRequest extracts pagination parameters from an HTTP request, falling
// back to defaults for absent values. Malformed numbers are reported rather
// than corrected.
func FromRequest(r *http.Request, defaults Request) (Request, error) {
	p := defaults
	q := r.URL.Query()

	if page := q.Get("page"); page != "" {
		v, err := strconv.Atoi(page)
		if err != nil {
			return p, apperrors.InvalidInput("page must be an integer")
		}
		p.Page = v
	}

	if size := q.Get("page_size"); size != "" {
		v, err := strconv.Atoi(size)
		if err != nil {
			return p, apperrors.InvalidInput("page_size must be an integer")
		}
		if v > MaxPageSize {
			v = MaxPageSize
		}
		p.PageSize = v
	}

	return p, nil
}

// Result wraps a paginated response.
type Result[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// TotalPages returns ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}

// NewResult creates a paginated result for a page that has already been cut.
func NewResult[T any](items []T, totalItems int, req Request) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(totalItems, req.PageSize)

	return Result[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}

// Empty returns a result with no items and zero totals.
func Empty[T any](req Request) Result[T] {
	return NewResult[T](nil, 0, req)
}

// Paginate slices [offset, offset+pageSize) out of all. Out-of-range pages
// yield an empty item list with correct totals. The returned items never
// alias all.
func Paginate[T any](all []T, req Request) (Result[T], error) {
	if err := req.Validate(); err != nil {
		return Result[T]{}, err
	}

	total := len(all)
	start := min(req.Offset(), total)
	end := start + min(req.PageSize, total-start)

	items := make([]T, end-start)
	copy(items, all[start:end])

	return NewResult(items, total, req), nil
}
