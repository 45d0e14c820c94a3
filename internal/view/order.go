package view

import (
	"context"

	"github.com/a-h/templ"
	"github.com/msomdec/storefront/internal/domain"
)

const timeLayout = "Jan 2, 2006 15:04 MST"

// CompletePage confirms a purchase. detail may be nil when the page is
// opened without an order reference.
func CompletePage(nav Nav, detail *domain.OrderDetail) templ.Component {
	return layout("Thank you", nav, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Thank you for your purchase!</h1>`)
		if detail != nil {
			h.rawf(`<p class="order-ref">Order #%d placed `, detail.Order.ID)
			h.text(detail.Order.CreatedAt.Format(timeLayout))
			h.raw(`</p>`)
			lineItems(h, detail.Summary)
		}
		h.raw(`<p><a href="/catalog">Continue shopping</a> or <a href="/orders">view your orders</a>.</p>`)
	}))
}

// OrdersPage lists past orders, newest first.
func OrdersPage(nav Nav, orders []domain.OrderDetail) templ.Component {
	return layout("Orders", nav, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Your orders</h1>`)
		if len(orders) == 0 {
			h.raw(`<p class="empty">You have not placed any orders yet.</p>`)
			return
		}
		h.raw(`<ol class="orders">`)
		for _, o := range orders {
			h.rawf(`<li class="order"><a href="/complete?order=%d">Order #%d</a> `, o.Order.ID, o.Order.ID)
			h.text(o.Order.CreatedAt.Format(timeLayout))
			h.rawf(` · %d items · `, o.Summary.Count)
			h.text(money(o.Summary.Total))
			h.raw(`</li>`)
		}
		h.raw(`</ol>`)
	}))
}
