package view

import (
	"context"

	"github.com/a-h/templ"
	"github.com/msomdec/storefront/internal/domain"
)

// CatalogPage lists every product with an add-to-cart form. With
// JavaScript enabled the form posts through Datastar and only the cart
// badge is patched.
func CatalogPage(nav Nav, products []domain.Product, flashes []string) templ.Component {
	return layout("Catalog", nav, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Catalog</h1>`)
		flashList(h, flashes)
		if len(products) == 0 {
			h.raw(`<p class="empty">No products yet.</p>`)
			return
		}
		h.raw(`<ul class="products">`)
		for _, p := range products {
			h.rawf(`<li class="product" id="product-%d">`, p.ID)
			h.raw(`<img src="`)
			h.text(p.ImageURL)
			h.raw(`" alt="`)
			h.text(p.Name)
			h.raw(`"><h2>`)
			h.text(p.Name)
			h.raw(`</h2><p class="price">`)
			h.text(money(p.Price))
			h.raw(`</p>`)
			h.raw(`<form method="post" action="/cart/add" data-on:submit="@post('/cart/add', {contentType: 'form'})">`)
			h.rawf(`<input type="hidden" name="product_id" value="%d">`, p.ID)
			h.raw(`<button type="submit">Add to cart</button></form></li>`)
		}
		h.raw(`</ul>`)
	}))
}
