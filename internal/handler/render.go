package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
)

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		requestLog(r).WithError(err).Error("render page")
	}
}

// serverError logs err and answers with a generic 500 page.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	requestLog(r).WithError(err).Error(msg)
	render(w, r, http.StatusInternalServerError,
		view.ErrorPage(http.StatusInternalServerError, "An unexpected error occurred. Please try again."))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, view.ErrorPage(http.StatusNotFound, "Page not found."))
}

// navFor builds the page header for the signed-in user. A failed cart
// lookup degrades to a zero badge.
func navFor(r *http.Request, carts *service.CartService) view.Nav {
	user := UserFromContext(r.Context())
	if user == nil {
		return view.Nav{}
	}
	count, err := carts.Count(r.Context(), user.ID)
	if err != nil {
		requestLog(r).WithError(err).Warn("count cart items")
	}
	return view.Nav{FirstName: user.FirstName, CartCount: count}
}
