package view

import (
	"context"

	"github.com/a-h/templ"
	"github.com/msomdec/storefront/internal/domain"
)

func lineItems(h *htmlWriter, summary domain.Summary) {
	h.raw(`<table class="line-items"><thead><tr><th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr></thead><tbody>`)
	for _, item := range summary.LineItems {
		h.rawf(`<tr data-product-id="%d"><td>`, item.Product.ID)
		h.text(item.Product.Name)
		h.rawf(`</td><td class="qty">%d</td><td>`, item.Quantity)
		h.text(money(item.Product.Price))
		h.raw(`</td><td class="subtotal">`)
		h.text(money(item.Subtotal))
		h.raw(`</td></tr>`)
	}
	h.raw(`</tbody><tfoot><tr><th colspan="3">Total</th><td class="total">`)
	h.text(money(summary.Total))
	h.raw(`</td></tr></tfoot></table>`)
}

// CartPage shows the grouped cart contents and the checkout button.
func CartPage(nav Nav, summary domain.Summary, flashes []string) templ.Component {
	return layout("Cart", nav, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Your cart</h1>`)
		flashList(h, flashes)
		if len(summary.LineItems) == 0 {
			h.raw(`<p class="empty">Your cart is empty. <a href="/catalog">Browse the catalog</a>.</p>`)
			return
		}
		lineItems(h, summary)
		h.raw(`<form method="post" action="/checkout"><button type="submit">Check out</button></form>`)
	}))
}
