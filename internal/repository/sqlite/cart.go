package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/storefront/internal/domain"
)

// cartRow mirrors the carts table. product_ids stays in its stored,
// comma-joined form until toDomain decodes it.
type cartRow struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	ProductIDs string    `db:"product_ids"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row cartRow) toDomain() (*domain.Cart, error) {
	ids, err := decodeProductIDs(row.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("cart %d: %w", row.ID, err)
	}
	return &domain.Cart{
		ID:         row.ID,
		UserID:     row.UserID,
		ProductIDs: ids,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// cartRepo implements domain.CartRepository using SQLite.
type cartRepo struct {
	db *sqlx.DB
}

func (r *cartRepo) GetByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	row, err := getCartRow(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *cartRepo) Append(ctx context.Context, userID, productID int64) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO carts (user_id, product_ids, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     product_ids = CASE WHEN carts.product_ids = '' THEN excluded.product_ids
		                        ELSE carts.product_ids || ',' || excluded.product_ids END,
		     updated_at = excluded.updated_at`,
		userID, strconv.FormatInt(productID, 10), now, now,
	)
	if err != nil {
		return fmt.Errorf("append to cart: %w", err)
	}
	return nil
}

func getCartRow(ctx context.Context, q sqlx.QueryerContext, userID int64) (*cartRow, error) {
	row := &cartRow{}
	err := sqlx.GetContext(ctx, q, row,
		`SELECT id, user_id, product_ids, created_at, updated_at FROM carts WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query cart: %w", err)
	}
	return row, nil
}

// encodeProductIDs joins ids into the stored "3,3,7" form.
func encodeProductIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// decodeProductIDs parses the stored form. Empty segments are skipped.
func decodeProductIDs(s string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode product id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
