package domain

import (
	"fmt"
	"slices"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

// SortField names a product attribute the catalog can be ordered by.
type SortField string

const (
	SortByName       SortField = "name"
	SortByPrice      SortField = "price"
	SortByRating     SortField = "rating"
	SortByCreatedAt  SortField = "createdAt"
	SortByPopularity SortField = "popularity"
)

// SortDirection is either ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortOption pairs a field with a direction. Label is presentation only.
type SortOption struct {
	Field     SortField     `json:"field" validate:"required,oneof=name price rating createdAt popularity"`
	Direction SortDirection `json:"direction" validate:"required,oneof=asc desc"`
	Label     string        `json:"label,omitempty"`
}

// DefaultSortOption orders by name, A to Z.
func DefaultSortOption() SortOption {
	return SortOption{Field: SortByName, Direction: Asc, Label: "Nombre (A-Z)"}
}

var sortOptions = []SortOption{
	{Field: SortByName, Direction: Asc, Label: "Nombre (A-Z)"},
	{Field: SortByName, Direction: Desc, Label: "Nombre (Z-A)"},
	{Field: SortByPrice, Direction: Asc, Label: "Precio (menor a mayor)"},
	{Field: SortByPrice, Direction: Desc, Label: "Precio (mayor a menor)"},
	{Field: SortByCreatedAt, Direction: Desc, Label: "Más recientes"},
	{Field: SortByRating, Direction: Desc, Label: "Mejor valorados"},
}

// SortOptions returns the options offered in the storefront sort menu.
func SortOptions() []SortOption {
	return slices.Clone(sortOptions)
}

// Equivalent reports whether both options order the same way.
func (s SortOption) Equivalent(o SortOption) bool {
	return s.Field == o.Field && s.Direction == o.Direction
}

// ParseSortOption builds an option from raw field and direction strings.
// An empty direction defaults to ascending. The label is filled from the menu
// when the combination is offered there.
func ParseSortOption(field, direction string) (SortOption, error) {
	opt := SortOption{Field: SortField(field), Direction: SortDirection(direction)}
	if opt.Direction == "" {
		opt.Direction = Asc
	}
	switch opt.Field {
	case SortByName, SortByPrice, SortByRating, SortByCreatedAt, SortByPopularity:
	default:
		return SortOption{}, apperrors.InvalidInput(fmt.Sprintf("unknown sort field %q", field))
	}
	if opt.Direction != Asc && opt.Direction != Desc {
		return SortOption{}, apperrors.InvalidInput(fmt.Sprintf("unknown sort direction %q", direction))
	}
	for _, known := range sortOptions {
		if known.Equivalent(opt) {
			opt.Label = known.Label
			break
		}
	}
	return opt, nil
}
