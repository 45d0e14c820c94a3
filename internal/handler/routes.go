package handler

import (
	"net/http"

	"github.com/msomdec/storefront/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	loginLimiter *service.RateLimiter,
	cookieSecure bool,
) {
	authH := NewAuthHandler(auth, cookieSecure)
	catalogH := NewCatalogHandler(catalog, carts)
	cartH := NewCartHandler(carts, cookieSecure)
	orderH := NewOrderHandler(orders, carts, cookieSecure)

	protected := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(auth, fn)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("GET /{$}", OptionalAuth(auth, http.HandlerFunc(authH.HandleRegisterPage)))
	mux.HandleFunc("POST /register", authH.HandleRegister)
	mux.HandleFunc("GET /login", authH.HandleLoginPage)
	mux.Handle("POST /login", RateLimit(loginLimiter, http.HandlerFunc(authH.HandleLogin)))
	mux.HandleFunc("GET /logout", authH.HandleLogout)

	mux.Handle("GET /catalog", protected(catalogH.HandleCatalog))
	mux.Handle("POST /cart/add", protected(cartH.HandleAddItem))
	mux.Handle("GET /cart", protected(cartH.HandleCart))
	mux.Handle("POST /checkout", protected(orderH.HandleCheckout))
	mux.Handle("GET /complete", protected(orderH.HandleComplete))
	mux.Handle("GET /orders", protected(orderH.HandleOrders))
}
