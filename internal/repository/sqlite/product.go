package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/storefront/internal/domain"
)

const productColumns = `id, name, image_url, price`

// productRepo implements domain.ProductRepository using SQLite.
type productRepo struct {
	db *sqlx.DB
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	if err := r.db.GetContext(ctx, p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	p := &domain.Product{}
	if err := r.db.GetContext(ctx, p, `SELECT `+productColumns+` FROM products WHERE name = ?`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	found := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list products by id: %w", err)
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, image_url, price) VALUES (?, ?, ?)`,
		product.Name, product.ImageURL, product.Price.String(),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get product id: %w", err)
	}
	product.ID = id
	return nil
}
