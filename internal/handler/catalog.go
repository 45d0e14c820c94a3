package handler

import (
	"net/http"

	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
)

// CatalogHandler serves the product list.
type CatalogHandler struct {
	catalog *service.CatalogService
	carts   *service.CartService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, carts *service.CartService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, carts: carts}
}

// HandleCatalog renders every product.
// GET /catalog
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		serverError(w, r, "list products", err)
		return
	}
	flashes := popFlash(w, r)
	render(w, r, http.StatusOK, view.CatalogPage(navFor(r, h.carts), products, flashes))
}
