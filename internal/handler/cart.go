package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// CartHandler handles adding to and viewing the cart.
type CartHandler struct {
	carts        *service.CartService
	cookieSecure bool
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *service.CartService, cookieSecure bool) *CartHandler {
	return &CartHandler{carts: carts, cookieSecure: cookieSecure}
}

// HandleAddItem adds one unit of product_id to the session user's cart.
// A user_id field, when sent, must name the session user. Datastar
// requests get the refreshed cart badge over SSE; others are redirected to
// the cart.
// POST /cart/add
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if v := r.FormValue("user_id"); v != "" {
		claimed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || claimed != user.ID {
			requestLog(r).WithField("claimed_user_id", v).Warn("cart add for another user")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.carts.AddItem(r.Context(), user.ID, productID); err != nil {
		if errors.Is(err, domain.ErrUnknownProduct) {
			if isDatastar(r) {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			setFlash(w, h.cookieSecure, "That product is no longer available.")
			http.Redirect(w, r, "/catalog", http.StatusSeeOther)
			return
		}
		serverError(w, r, "add to cart", err)
		return
	}

	if !isDatastar(r) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	count, err := h.carts.Count(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, "count cart items", err)
		return
	}
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.CartBadge(count), datastar.WithSelectorID(view.CartBadgeID)); err != nil {
		requestLog(r).WithError(err).Warn("patch cart badge")
	}
}

// HandleCart renders the grouped cart contents.
// GET /cart
func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	summary, err := h.carts.GetSummary(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, "get cart summary", err)
		return
	}
	flashes := popFlash(w, r)
	nav := view.Nav{FirstName: user.FirstName, CartCount: summary.Count}
	render(w, r, http.StatusOK, view.CartPage(nav, summary, flashes))
}

func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
