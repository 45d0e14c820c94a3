package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/storefront/internal/domain"
)

type orderRow struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	ProductIDs string    `db:"product_ids"`
	CreatedAt  time.Time `db:"created_at"`
}

func (row orderRow) toDomain() (*domain.Order, error) {
	ids, err := decodeProductIDs(row.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", row.ID, err)
	}
	return &domain.Order{
		ID:         row.ID,
		UserID:     row.UserID,
		ProductIDs: ids,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// orderRepo implements domain.OrderRepository using SQLite.
type orderRepo struct {
	db *sqlx.DB
}

func (r *orderRepo) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	var order *domain.Order

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		row, err := getCartRow(ctx, tx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEmptyCart
		}
		if err != nil {
			return err
		}

		cart, err := row.toDomain()
		if err != nil {
			return err
		}
		if len(cart.ProductIDs) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO orders (user_id, product_ids, created_at) VALUES (?, ?, ?)`,
			userID, encodeProductIDs(cart.ProductIDs), now,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get order id: %w", err)
		}

		// Only clear the cart we actually read.
		result, err = tx.ExecContext(ctx,
			`UPDATE carts SET product_ids = '', updated_at = ? WHERE id = ? AND product_ids = ?`,
			now, row.ID, row.ProductIDs,
		)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n != 1 {
			return domain.ErrConflict
		}

		order = &domain.Order{
			ID:         orderID,
			UserID:     userID,
			ProductIDs: cart.ProductIDs,
			CreatedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := orderRow{}
	err := r.db.GetContext(ctx, &row,
		`SELECT id, user_id, product_ids, created_at FROM orders WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return row.toDomain()
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, product_ids, created_at FROM orders
		 WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}
