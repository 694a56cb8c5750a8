package domain

import "slices"

// CartItem represents a single line in the cart. A line is identified by the
// (ProductID, VariantID) pair.
type CartItem struct {
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	UnitPrice      int64  `json:"unit_price"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image_url,omitempty"`
	AvailableStock int    `json:"available_stock"`
}

// Subtotal returns UnitPrice × Quantity in minor units.
func (i CartItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// CartCandidate is a line item without a quantity, as offered by a product page.
type CartCandidate struct {
	ProductID      string `json:"product_id" validate:"required"`
	VariantID      string `json:"variant_id"`
	Name           string `json:"name" validate:"required"`
	SKU            string `json:"sku"`
	UnitPrice      int64  `json:"unit_price" validate:"gte=0"`
	ImageURL       string `json:"image_url,omitempty"`
	AvailableStock int    `json:"available_stock" validate:"gte=0"`
}

// Line turns the candidate into a cart line with the given quantity.
func (c CartCandidate) Line(quantity int) CartItem {
	return CartItem{
		ProductID:      c.ProductID,
		VariantID:      c.VariantID,
		Name:           c.Name,
		SKU:            c.SKU,
		UnitPrice:      c.UnitPrice,
		Quantity:       quantity,
		ImageURL:       c.ImageURL,
		AvailableStock: c.AvailableStock,
	}
}

// Cart is the cart aggregate. Totals are always recomputed from Items by
// NewCart and never patched in place.
type Cart struct {
	Items          []CartItem `json:"items"`
	TotalAmount    int64      `json:"total_amount"`
	TotalItemCount int        `json:"total_item_count"`
}

// EmptyCart returns a cart with no lines.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// NewCart builds a cart from items, copying the slice and recomputing totals.
func NewCart(items []CartItem) Cart {
	c := Cart{Items: make([]CartItem, len(items))}
	copy(c.Items, items)
	for _, item := range c.Items {
		c.TotalAmount += item.Subtotal()
		c.TotalItemCount += item.Quantity
	}
	return c
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	out := c
	out.Items = slices.Clone(c.Items)
	if out.Items == nil {
		out.Items = []CartItem{}
	}
	return out
}

// FindItemIndex returns the index of the line matching the given product and
// variant IDs, or -1.
func (c Cart) FindItemIndex(productID, variantID string) int {
	return slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.ProductID == productID && item.VariantID == variantID
	})
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
