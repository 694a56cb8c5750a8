// Package store holds the storefront state containers. Each store owns one
// reactive cell and exposes intent-level mutations plus derived views.
//
// Stores are single-writer. Callers on multiple goroutines must serialize
// every call, reads included.
package store

import (
	"log/slog"
	"slices"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/reactive"
)

// CartStore owns the cart aggregate.
type CartStore struct {
	state  *reactive.Cell[domain.Cart]
	total  *reactive.View[int64]
	count  *reactive.View[int]
	logger *slog.Logger
}

// NewCartStore creates a cart store from a hydrated cart. Totals are
// recomputed and lines with a non-positive quantity are dropped.
func NewCartStore(initial domain.Cart, logger *slog.Logger) *CartStore {
	items := slices.DeleteFunc(slices.Clone(initial.Items), func(i domain.CartItem) bool {
		return i.Quantity < 1
	})

	s := &CartStore{
		state:  reactive.NewCell(domain.NewCart(items)),
		logger: logger,
	}
	s.total = reactive.Map(s.state, func(c domain.Cart) int64 { return c.TotalAmount })
	s.count = reactive.Map(s.state, func(c domain.Cart) int { return c.TotalItemCount })
	return s
}

// State exposes the underlying cell for observers such as persistence.
func (s *CartStore) State() *reactive.Cell[domain.Cart] {
	return s.state
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() domain.Cart {
	return s.state.Get().Clone()
}

// TotalAmount is the derived cart total in minor units.
func (s *CartStore) TotalAmount() *reactive.View[int64] {
	return s.total
}

// ItemCount is the derived number of units in the cart.
func (s *CartStore) ItemCount() *reactive.View[int] {
	return s.count
}

// AddItem adds one unit of the candidate. An existing line is incremented and
// silently capped at the candidate's available stock, never dropping below 1,
// and takes the candidate's stock figure; a new line starts at 1.
func (s *CartStore) AddItem(c domain.CartCandidate) {
	s.state.Update(func(cart domain.Cart) domain.Cart {
		items := slices.Clone(cart.Items)

		idx := cart.FindItemIndex(c.ProductID, c.VariantID)
		if idx < 0 {
			items = append(items, c.Line(1))
		} else {
			qty := max(min(items[idx].Quantity+1, c.AvailableStock), 1)
			items[idx].Quantity = qty
			items[idx].AvailableStock = c.AvailableStock
		}
		return domain.NewCart(items)
	})

	s.logger.Debug("cart item added",
		slog.String("product_id", c.ProductID),
		slog.String("variant_id", c.VariantID),
		slog.Int("item_count", s.state.Get().TotalItemCount),
	)
}

// UpdateQuantity sets the quantity of a line. A quantity below 1 removes the
// line. The quantity is not checked against stock. Unknown lines are ignored.
func (s *CartStore) UpdateQuantity(productID, variantID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(productID, variantID)
		return
	}

	cart := s.state.Get()
	idx := cart.FindItemIndex(productID, variantID)
	if idx < 0 {
		return
	}

	items := slices.Clone(cart.Items)
	items[idx].Quantity = quantity
	s.state.Set(domain.NewCart(items))

	s.logger.Debug("cart item quantity updated",
		slog.String("product_id", productID),
		slog.String("variant_id", variantID),
		slog.Int("quantity", quantity),
	)
}

// RemoveItem deletes a line. Unknown lines are ignored.
func (s *CartStore) RemoveItem(productID, variantID string) {
	cart := s.state.Get()
	idx := cart.FindItemIndex(productID, variantID)
	if idx < 0 {
		return
	}

	s.state.Set(domain.NewCart(slices.Delete(slices.Clone(cart.Items), idx, idx+1)))

	s.logger.Debug("cart item removed",
		slog.String("product_id", productID),
		slog.String("variant_id", variantID),
	)
}

// Clear resets the cart to empty.
func (s *CartStore) Clear() {
	s.state.Set(domain.EmptyCart())
	s.logger.Debug("cart cleared")
}
