package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds a user's selected products. ProductIDs is an ordered
// multiset: a product appearing k times has quantity k.
type Cart struct {
	ID         int64
	UserID     int64
	ProductIDs []int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineItem groups every occurrence of one product in a cart or order.
type LineItem struct {
	Product  Product
	Quantity int
	Subtotal decimal.Decimal
}

// Summary is the priced view of a multiset of product IDs.
type Summary struct {
	LineItems []LineItem
	Total     decimal.Decimal
	Count     int
}

// CartRepository persists carts. There is at most one cart per user.
type CartRepository interface {
	// GetByUser returns ErrNotFound when the user has never added an item.
	GetByUser(ctx context.Context, userID int64) (*Cart, error)
	// Append adds productID to the end of the user's cart, creating the
	// cart if it does not exist yet.
	Append(ctx context.Context, userID, productID int64) error
}
