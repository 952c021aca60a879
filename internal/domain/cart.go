package domain

import (
	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 999

	// MaxSessionIDLength is the width of carts.session_id
	MaxSessionIDLength = 255
)

// Cart is the single cart owned by an anonymous session
type Cart struct {
	ID        int64  `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
}

// CartItem is one product line of a cart. A cart holds at most one item
// per product.
type CartItem struct {
	ID        int64 `json:"id" db:"id"`
	CartID    int64 `json:"cart_id" db:"cart_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartLine is a cart item joined with the current state of its product
type CartLine struct {
	Item    CartItem
	Product Product
}

// CartItemView is a priced cart line as returned to clients
type CartItemView struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductImage *string         `json:"product_image"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartView is the full priced cart
type CartView struct {
	ID    int64           `json:"id"`
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// EmptyCartView is what a session that never mutated its cart sees
func EmptyCartView() *CartView {
	return &CartView{
		ID:    0,
		Items: []CartItemView{},
		Total: decimal.Zero,
	}
}

// ValidQuantity reports whether q is inside the accepted per-request range
func ValidQuantity(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}
