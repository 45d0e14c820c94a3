package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CartService maintains per-user carts and prices their contents.
type CartService struct {
	carts    domain.CartRepository
	products domain.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts domain.CartRepository, products domain.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem appends one unit of productID to the user's cart. Unknown
// products are rejected with ErrUnknownProduct.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %d", domain.ErrUnknownProduct, productID)
		}
		return fmt.Errorf("get product: %w", err)
	}
	if err := s.carts.Append(ctx, userID, productID); err != nil {
		return fmt.Errorf("append to cart: %w", err)
	}
	return nil
}

// GetSummary prices the user's cart. A user without a cart gets an empty
// summary.
func (s *CartService) GetSummary(ctx context.Context, userID int64) (domain.Summary, error) {
	ids, err := s.productIDs(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load cart products: %w", err)
	}
	return Summarize(ids, products)
}

// Count returns the number of items in the user's cart.
func (s *CartService) Count(ctx context.Context, userID int64) (int, error) {
	ids, err := s.productIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *CartService) productIDs(ctx context.Context, userID int64) ([]int64, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart.ProductIDs, nil
}

// Summarize groups ids into line items. Quantity is the number of
// occurrences, Subtotal is Quantity times the whole-unit price, and items
// are ordered by descending quantity with ties kept in first-seen order.
// Every id must be present in products.
func Summarize(ids []int64, products map[int64]domain.Product) (domain.Summary, error) {
	summary := domain.Summary{
		LineItems: []domain.LineItem{},
		Total:     decimal.Zero,
	}

	index := make(map[int64]int, len(ids))
	for _, id := range ids {
		if i, ok := index[id]; ok {
			summary.LineItems[i].Quantity++
			continue
		}
		p, ok := products[id]
		if !ok {
			return domain.Summary{}, fmt.Errorf("%w: %d", domain.ErrUnknownProduct, id)
		}
		index[id] = len(summary.LineItems)
		summary.LineItems = append(summary.LineItems, domain.LineItem{Product: p, Quantity: 1})
	}

	slices.SortStableFunc(summary.LineItems, func(a, b domain.LineItem) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})

	for i := range summary.LineItems {
		item := &summary.LineItems[i]
		item.Subtotal = item.Product.Price.Truncate(0).Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Total = summary.Total.Add(item.Subtotal)
		summary.Count += item.Quantity
	}
	return summary, nil
}
