package store

import (
	"sync"

	"github.com/devHenao/ventasPro/internal/auth"
)

// Storefront bundles the stores of the shopper and serializes access to them
// so that request goroutines keep the single-writer model.
type Storefront struct {
	mu        sync.Mutex
	Cart      *CartStore
	Favorites *FavoritesStore
	Filters   *FilterCriteriaStore
	Browse    *BrowseStore
	Session   *auth.Manager
}

// With runs fn while holding the storefront lock. fn must not block on I/O.
func (s *Storefront) With(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Token returns the administrator credential.
func (s *Storefront) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Session.Token()
}
