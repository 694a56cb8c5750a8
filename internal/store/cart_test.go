package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devHenao/ventasPro/internal/domain"
)

func laptop(stock int) domain.CartCandidate {
	return domain.CartCandidate{
		ProductID:      "p1",
		Name:           "Dell XPS 13",
		SKU:            "DELL-XPS13",
		UnitPrice:      129999,
		AvailableStock: stock,
	}
}

func mouse() domain.CartCandidate {
	return domain.CartCandidate{
		ProductID:      "p2",
		VariantID:      "graphite",
		Name:           "Logitech MX Master 3",
		UnitPrice:      9999,
		AvailableStock: 50,
	}
}

func assertTotals(t *testing.T, s *CartStore) {
	t.Helper()
	cart := s.Cart()
	var amount int64
	var count int
	for _, item := range cart.Items {
		amount += item.UnitPrice * int64(item.Quantity)
		count += item.Quantity
	}
	assert.Equal(t, amount, cart.TotalAmount)
	assert.Equal(t, count, cart.TotalItemCount)
	assert.Equal(t, amount, s.TotalAmount().Get())
	assert.Equal(t, count, s.ItemCount().Get())
}

func TestCartStore_AddItemTwiceMergesLine(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	s.AddItem(laptop(15))
	s.AddItem(laptop(15))

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(259998), cart.TotalAmount)
	assertTotals(t, s)
}

func TestCartStore_AddItemClampsToStock(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	s.AddItem(laptop(1))
	s.AddItem(laptop(1))

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assertTotals(t, s)
}

func TestCartStore_AddItemRefreshesLineStock(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	s.AddItem(laptop(5))
	s.AddItem(laptop(3))

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.Items[0].AvailableStock)
}

func TestCartStore_AddItemWithZeroStockKeepsOneUnit(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	s.AddItem(laptop(10))
	s.UpdateQuantity("p1", "", 3)

	s.AddItem(laptop(0))

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 0, cart.Items[0].AvailableStock)
	assertTotals(t, s)
}

func TestCartStore_AddItemNewLineIgnoresStock(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	s.AddItem(laptop(0))
	s.AddItem(laptop(0))

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartStore_VariantsAreDistinctLines(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	red := mouse()
	red.VariantID = "red"
	s.AddItem(mouse())
	s.AddItem(red)

	assert.Len(t, s.Cart().Items, 2)
	assert.Equal(t, 2, s.ItemCount().Get())
}

func TestCartStore_UpdateQuantityIsNotClamped(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	s.AddItem(laptop(2))

	s.UpdateQuantity("p1", "", 10)

	assert.Equal(t, 10, s.Cart().Items[0].Quantity)
	assertTotals(t, s)
}

func TestCartStore_UpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -3} {
		s := NewCartStore(domain.EmptyCart(), testLogger())
		s.AddItem(laptop(5))
		s.AddItem(mouse())

		s.UpdateQuantity("p1", "", qty)

		cart := s.Cart()
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "p2", cart.Items[0].ProductID)
		assertTotals(t, s)
	}
}

func TestCartStore_UnknownLinesAreIgnored(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	s.AddItem(mouse())
	version := s.State().Version()

	s.UpdateQuantity("nope", "", 3)
	s.RemoveItem("p2", "other")

	assert.Equal(t, version, s.State().Version())
	assert.Len(t, s.Cart().Items, 1)
}

func TestCartStore_TotalsHoldAcrossSequence(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())

	steps := []func(){
		func() { s.AddItem(laptop(3)) },
		func() { s.AddItem(mouse()) },
		func() { s.AddItem(laptop(3)) },
		func() { s.UpdateQuantity("p2", "graphite", 7) },
		func() { s.AddItem(laptop(3)) },
		func() { s.AddItem(laptop(3)) },
		func() { s.RemoveItem("p1", "") },
		func() { s.UpdateQuantity("p2", "graphite", 2) },
	}
	for _, step := range steps {
		step()
		assertTotals(t, s)
	}
	assert.Equal(t, int64(19998), s.TotalAmount().Get())
}

func TestCartStore_Clear(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	s.AddItem(mouse())

	s.Clear()

	assert.True(t, s.Cart().IsEmpty())
	assert.Zero(t, s.TotalAmount().Get())
	assert.Zero(t, s.ItemCount().Get())
}

func TestNewCartStore_RecomputesHydratedTotals(t *testing.T) {
	hydrated := domain.Cart{
		Items: []domain.CartItem{
			{ProductID: "p1", UnitPrice: 100, Quantity: 2},
			{ProductID: "p2", UnitPrice: 50, Quantity: 0},
		},
		TotalAmount:    1,
		TotalItemCount: 99,
	}

	s := NewCartStore(hydrated, testLogger())

	cart := s.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(200), cart.TotalAmount)
	assert.Equal(t, 2, cart.TotalItemCount)
}

func TestCartStore_CartReturnsCopy(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	s.AddItem(mouse())

	cart := s.Cart()
	cart.Items[0].Quantity = 40

	assert.Equal(t, 1, s.Cart().Items[0].Quantity)
}

func TestCartStore_SubscribersSeeNewTotals(t *testing.T) {
	s := NewCartStore(domain.EmptyCart(), testLogger())
	var seen []int64
	s.State().Subscribe(func(domain.Cart) {
		seen = append(seen, s.TotalAmount().Get())
	})

	s.AddItem(mouse())
	s.AddItem(mouse())

	assert.Equal(t, []int64{9999, 19998}, seen)
}
