package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	orders       *service.OrderService
	carts        *service.CartService
	cookieSecure bool
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService, carts *service.CartService, cookieSecure bool) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, cookieSecure: cookieSecure}
}

// HandleCheckout turns the cart into an order.
// POST /checkout
func (h *OrderHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	detail, err := h.orders.Checkout(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			setFlash(w, h.cookieSecure, "Your cart is empty.")
		case errors.Is(err, domain.ErrConflict):
			setFlash(w, h.cookieSecure, "Your cart changed during checkout. Please review it and try again.")
		default:
			serverError(w, r, "checkout", err)
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/complete?order="+strconv.FormatInt(detail.Order.ID, 10), http.StatusSeeOther)
}

// HandleComplete renders the purchase confirmation, with the order's line
// items when ?order= names one of the user's orders.
// GET /complete
func (h *OrderHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var detail *domain.OrderDetail
	if v := r.URL.Query().Get("order"); v != "" {
		orderID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			notFound(w, r)
			return
		}
		detail, err = h.orders.GetOrder(r.Context(), user.ID, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(w, r)
				return
			}
			serverError(w, r, "get order", err)
			return
		}
	}

	render(w, r, http.StatusOK, view.CompletePage(navFor(r, h.carts), detail))
}

// HandleOrders renders the user's order history.
// GET /orders
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, "list orders", err)
		return
	}
	render(w, r, http.StatusOK, view.OrdersPage(navFor(r, h.carts), orders))
}
