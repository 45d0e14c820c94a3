package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CatalogService exposes the product catalog.
type CatalogService struct {
	products domain.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns every product ordered by ID.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct returns ErrNotFound for unknown IDs.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Seed inserts the built-in products. It is idempotent: products already
// present by name are skipped.
func (s *CatalogService) Seed(ctx context.Context) error {
	added := 0
	for _, p := range defaultProducts {
		_, err := s.products.GetByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check product %s: %w", p.Name, err)
		}
		if err := s.products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		added++
	}
	if added > 0 {
		log.WithField("count", added).Info("seeded products")
	}
	return nil
}

var defaultProducts = []domain.Product{
	{Name: "Canvas Tote Bag", ImageURL: "/static/img/tote.jpg", Price: decimal.RequireFromString("18.00")},
	{Name: "Ceramic Coffee Mug", ImageURL: "/static/img/mug.jpg", Price: decimal.RequireFromString("12.50")},
	{Name: "Wool Beanie", ImageURL: "/static/img/beanie.jpg", Price: decimal.RequireFromString("24.99")},
	{Name: "Leather Notebook", ImageURL: "/static/img/notebook.jpg", Price: decimal.RequireFromString("32.00")},
	{Name: "Enamel Pin Set", ImageURL: "/static/img/pins.jpg", Price: decimal.RequireFromString("9.75")},
	{Name: "Linen Apron", ImageURL: "/static/img/apron.jpg", Price: decimal.RequireFromString("40.00")},
	{Name: "Scented Candle", ImageURL: "/static/img/candle.jpg", Price: decimal.RequireFromString("16.00")},
	{Name: "Stainless Water Bottle", ImageURL: "/static/img/bottle.jpg", Price: decimal.RequireFromString("27.49")},
}
