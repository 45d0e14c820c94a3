package view

import (
	"context"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Nav describes the signed-in user for the page header. The zero value
// renders a signed-out header.
type Nav struct {
	FirstName string
	CartCount int
}

func (n Nav) signedIn() bool { return n.FirstName != "" }

func layout(title string, nav Nav, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` · Storefront</title>`)
		h.rawf(`<script type="module" src="%s"></script>`, datastarScript)
		h.raw(`</head><body><header><a class="brand" href="/">Storefront</a><nav>`)
		if nav.signedIn() {
			h.raw(`<span class="greeting">Hello, `)
			h.text(nav.FirstName)
			h.raw(`</span>`)
			h.raw(`<a href="/catalog">Catalog</a>`)
			h.raw(`<a href="/cart">Cart `)
			h.component(ctx, CartBadge(nav.CartCount))
			h.raw(`</a>`)
			h.raw(`<a href="/orders">Orders</a>`)
			h.raw(`<a href="/logout">Log out</a>`)
		} else {
			h.raw(`<a href="/">Register</a><a href="/login">Log in</a>`)
		}
		h.raw(`</nav></header><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

// CartBadge is the item counter in the header. Its id is the Datastar
// patch target when an item is added.
func CartBadge(count int) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.rawf(`<span id="%s" class="badge">%d</span>`, CartBadgeID, count)
	})
}

// CartBadgeID is the element id of CartBadge.
const CartBadgeID = "cart-count"
