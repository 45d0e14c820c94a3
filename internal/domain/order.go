package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart taken at checkout.
type Order struct {
	ID         int64
	UserID     int64
	ProductIDs []int64
	CreatedAt  time.Time
}

// OrderRepository persists orders. Checkout is the only way an order is
// created.
type OrderRepository interface {
	// Checkout moves the user's cart contents into a new order and empties
	// the cart in a single transaction. It returns ErrEmptyCart when there
	// is nothing to order.
	Checkout(ctx context.Context, userID int64) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
}

// OrderPlaced is published after a checkout commits.
type OrderPlaced struct {
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	ProductIDs []int64         `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EventPublisher delivers domain events to the outside world.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// OrderDetail is an order together with its priced line items.
type OrderDetail struct {
	Order   Order
	Summary Summary
}
