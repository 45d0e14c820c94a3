package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are seeded at startup and are not
// edited through the storefront.
type Product struct {
	ID       int64           `db:"id"`
	Name     string          `db:"name"`
	ImageURL string          `db:"image_url"`
	Price    decimal.Decimal `db:"price"`
}

// ProductRepository defines read access to the catalog plus seeding.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	// ListByIDs returns the products whose IDs appear in ids, keyed by ID.
	// Missing IDs are simply absent from the map.
	ListByIDs(ctx context.Context, ids []int64) (map[int64]Product, error)
	Create(ctx context.Context, product *Product) error
}
