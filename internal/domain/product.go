package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// The catalog and cart engines only read products; they are written by
// the seeding tool or an external catalog-management process.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       *string         `json:"image" db:"image"`
	Category    string          `json:"category" db:"category"`
}

// SortField is a column the catalog can be ordered by
type SortField string

const (
	SortByID    SortField = "id"
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

// ParseSortField maps a client-supplied value to a sort column.
// Unknown values fall back to SortByID.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByName:
		return SortByName
	case SortByPrice:
		return SortByPrice
	default:
		return SortByID
	}
}

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100
)

// ProductFilter is the predicate set shared by the count and page queries.
// Nil/empty fields are absent.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
}

// ProductQuery is a full catalog listing request
type ProductQuery struct {
	Filter    ProductFilter
	SortBy    SortField
	SortOrder SortOrder
	Limit     int
	Offset    int
}

// Category is a distinct product category with the number of products in it
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}
