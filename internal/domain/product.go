package domain

import "time"

// Product is a catalog entry. Prices are in minor units.
type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug,omitempty"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Brand         string    `json:"brand,omitempty"`
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	ImageURL      string    `json:"image_url,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Candidate returns the cart candidate for the given variant of p.
func (p Product) Candidate(variantID string) CartCandidate {
	return CartCandidate{
		ProductID:      p.ID,
		VariantID:      variantID,
		Name:           p.Name,
		SKU:            p.SKU,
		UnitPrice:      p.Price,
		ImageURL:       p.ImageURL,
		AvailableStock: p.Stock,
	}
}

// Category groups products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategorySummary is a category with the number of catalog products in it.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name          string   `json:"name" validate:"required,max=200"`
	SKU           string   `json:"sku" validate:"max=64"`
	Description   string   `json:"description" validate:"max=4000"`
	Price         int64    `json:"price" validate:"gte=0"`
	OriginalPrice int64    `json:"original_price" validate:"gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Brand         string   `json:"brand" validate:"max=100"`
	CategoryID    string   `json:"category_id" validate:"required"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
	Tags          []string `json:"tags" validate:"max=20,dive,required,max=40"`
	IsFeatured    bool     `json:"is_featured"`
}

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	ParentID    string `json:"parent_id"`
}
