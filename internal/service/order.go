package service

import (
	"context"
	"fmt"

	"github.com/msomdec/storefront/internal/domain"
	log "github.com/sirupsen/logrus"
)

// OrderService turns carts into orders and reads order history.
type OrderService struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	publisher domain.EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, publisher domain.EventPublisher) *OrderService {
	return &OrderService{orders: orders, products: products, publisher: publisher}
}

// Checkout records the user's cart as a new order and empties the cart.
// It returns ErrEmptyCart when the cart has nothing in it. The order.placed
// event is published after the order is stored; a publish failure is
// logged and does not fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*domain.OrderDetail, error) {
	order, err := s.orders.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail, err := s.detail(ctx, order)
	if err != nil {
		return nil, err
	}

	event := domain.OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		ProductIDs: order.ProductIDs,
		Total:      detail.Summary.Total,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Error("publish order placed")
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"items":    detail.Summary.Count,
		"total":    detail.Summary.Total.String(),
	}).Info("order placed")
	return detail, nil
}

// GetOrder returns ErrNotFound unless the order belongs to userID.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.detail(ctx, order)
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.OrderDetail, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var ids []int64
	for _, o := range orders {
		ids = append(ids, o.ProductIDs...)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, o := range orders {
		summary, err := Summarize(o.ProductIDs, products)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", o.ID, err)
		}
		details = append(details, domain.OrderDetail{Order: o, Summary: summary})
	}
	return details, nil
}

func (s *OrderService) detail(ctx context.Context, order *domain.Order) (*domain.OrderDetail, error) {
	products, err := s.products.ListByIDs(ctx, order.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	summary, err := Summarize(order.ProductIDs, products)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", order.ID, err)
	}
	return &domain.OrderDetail{Order: *order, Summary: summary}, nil
}
