package memory

import (
	"time"

	"github.com/devHenao/ventasPro/internal/domain"
)

var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedCategories returns the demo categories of the local catalog.
func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: "3", Name: "Laptops", Slug: "laptops", IsActive: true, CreatedAt: seedTime},
		{ID: "5", Name: "Mouse y Teclados", Slug: "mouse-teclados", IsActive: true, CreatedAt: seedTime},
	}
}

// SeedProducts returns the demo products of the local catalog.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:           "1",
			SKU:          "DELL-XPS13",
			Name:         "Laptop Dell XPS 13",
			Slug:         "laptop-dell-xps-13",
			Description:  "Laptop ultradelgada con procesador Intel i7, 16GB RAM, 512GB SSD",
			Price:        129999,
			Stock:        10,
			Rating:       4.5,
			ReviewCount:  128,
			Brand:        "Dell",
			CategoryID:   "3",
			CategoryName: "Laptops",
			ImageURL:     "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500",
			Tags:         []string{"ultrabook", "intel"},
			IsFeatured:   true,
			IsActive:     true,
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
		{
			ID:           "2",
			SKU:          "LOGI-MXM3",
			Name:         "Mouse Logitech MX Master 3",
			Slug:         "mouse-logitech-mx-master-3",
			Description:  "Mouse inalámbrico ergonómico para productividad avanzada",
			Price:        9999,
			Stock:        25,
			Rating:       4.8,
			ReviewCount:  342,
			Brand:        "Logitech",
			CategoryID:   "5",
			CategoryName: "Mouse y Teclados",
			ImageURL:     "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500",
			Tags:         []string{"inalambrico", "bluetooth"},
			IsActive:     true,
			CreatedAt:    seedTime.Add(24 * time.Hour),
			UpdatedAt:    seedTime.Add(24 * time.Hour),
		},
		{
			ID:           "3",
			SKU:          "APPLE-MBP-M3",
			Name:         "MacBook Pro M3",
			Slug:         "macbook-pro-m3",
			Description:  "Laptop profesional con chip M3, 18GB RAM, 512GB SSD",
			Price:        219999,
			Stock:        5,
			Rating:       4.9,
			ReviewCount:  87,
			Brand:        "Apple",
			CategoryID:   "3",
			CategoryName: "Laptops",
			ImageURL:     "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500",
			Tags:         []string{"apple silicon"},
			IsFeatured:   true,
			IsActive:     true,
			CreatedAt:    seedTime.Add(48 * time.Hour),
			UpdatedAt:    seedTime.Add(48 * time.Hour),
		},
	}
}
