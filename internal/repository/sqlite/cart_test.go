package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/msomdec/storefront/internal/domain"
)

func TestCartRepository_GetByUser_NoCart(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "nocart@example.com")

	_, err := db.Carts().GetByUser(context.Background(), user.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartRepository_AppendCreatesAndExtends(t *testing.T) {
	db := newTestDB(t)
	repo := db.Carts()
	ctx := context.Background()

	user := createTestUser(t, db, "append@example.com")
	a := createTestProduct(t, db, "alpha", 10)
	b := createTestProduct(t, db, "beta", 5)

	for _, id := range []int64{a.ID, b.ID, a.ID} {
		if err := repo.Append(ctx, user.ID, id); err != nil {
			t.Fatalf("Append(%d): %v", id, err)
		}
	}

	cart, err := repo.GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if diff := cmp.Diff([]int64{a.ID, b.ID, a.ID}, cart.ProductIDs); diff != "" {
		t.Fatalf("cart contents mismatch (-want +got):\n%s", diff)
	}

	var rows int
	if err := db.SqlDB.GetContext(ctx, &rows, "SELECT COUNT(*) FROM carts WHERE user_id = ?", user.ID); err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly one cart row, got %d", rows)
	}
}

func TestCartRepository_StoredEncoding(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "encoding@example.com")
	p := createTestProduct(t, db, "gamma", 3)

	for i := 0; i < 2; i++ {
		if err := db.Carts().Append(ctx, user.ID, p.ID); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	var stored string
	if err := db.SqlDB.GetContext(ctx, &stored, "SELECT product_ids FROM carts WHERE user_id = ?", user.ID); err != nil {
		t.Fatalf("read product_ids: %v", err)
	}
	want := fmt.Sprintf("%d,%d", p.ID, p.ID)
	if stored != want {
		t.Fatalf("expected stored %q, got %q", want, stored)
	}
}

func TestCartRepository_CartsAreIsolated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u1 := createTestUser(t, db, "one@example.com")
	u2 := createTestUser(t, db, "two@example.com")
	p := createTestProduct(t, db, "delta", 1)

	if err := db.Carts().Append(ctx, u1.ID, p.ID); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, err := db.Carts().GetByUser(ctx, u2.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected second user to have no cart, got %v", err)
	}
}
