package store

import (
	"log/slog"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/reactive"
	"github.com/devHenao/ventasPro/pkg/pagination"
	"github.com/devHenao/ventasPro/pkg/validator"
)

// BrowseStore holds the catalog sort order and page request. Any change to
// the filter criteria sends the shopper back to the first page.
type BrowseStore struct {
	sort   *reactive.Cell[domain.SortOption]
	page   *reactive.Cell[pagination.Request]
	stop   func()
	logger *slog.Logger
}

// NewBrowseStore creates the store and starts observing filters.
func NewBrowseStore(filters *FilterCriteriaStore, pageSize int, logger *slog.Logger) *BrowseStore {
	page := pagination.DefaultRequest()
	if pageSize > 0 {
		page.PageSize = pageSize
	}

	s := &BrowseStore{
		sort:   reactive.NewCell(domain.DefaultSortOption()),
		page:   reactive.NewCell(page),
		logger: logger,
	}
	s.stop = filters.State().Subscribe(func(domain.FilterCriteria) {
		s.resetPage()
	})
	return s
}

// Sort returns the active sort option.
func (s *BrowseStore) Sort() domain.SortOption {
	return s.sort.Get()
}

// Page returns the active page request.
func (s *BrowseStore) Page() pagination.Request {
	return s.page.Get()
}

// SortState exposes the sort cell.
func (s *BrowseStore) SortState() *reactive.Cell[domain.SortOption] {
	return s.sort
}

// PageState exposes the page cell.
func (s *BrowseStore) PageState() *reactive.Cell[pagination.Request] {
	return s.page
}

// SortOptions lists the options offered to shoppers.
func (s *BrowseStore) SortOptions() []domain.SortOption {
	return domain.SortOptions()
}

// SetSort changes the order. The page number is kept.
func (s *BrowseStore) SetSort(opt domain.SortOption) error {
	if err := validator.ValidateInput(opt); err != nil {
		return err
	}
	if !opt.Equivalent(s.sort.Get()) {
		s.sort.Set(opt)
	}
	return nil
}

// SetPagination replaces the page request. Invalid requests are rejected and
// leave the state untouched.
func (s *BrowseStore) SetPagination(req pagination.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req != s.page.Get() {
		s.page.Set(req)
	}
	return nil
}

// Close stops observing the filter store.
func (s *BrowseStore) Close() {
	s.stop()
}

func (s *BrowseStore) resetPage() {
	cur := s.page.Get()
	if cur.Page == 1 {
		return
	}
	cur.Page = 1
	s.page.Set(cur)
	s.logger.Debug("browse page reset")
}
