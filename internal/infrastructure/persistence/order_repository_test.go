package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		db := newTestDatabase(t)
		c := createCustomer(t, db, "John", "Doe", "john@example.com", "555-0001")
		o := createOrder(t, db, c.ID)

		found, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.CustomerID)
		assert.Equal(t, "2023-05-01", found.OrderDate.Format(shared.DateLayout))
		assert.Equal(t, "25.98", found.TotalPrice.StringFixed(2))
	})

	t.Run("unknown customer is rejected by the store", func(t *testing.T) {
		db := newTestDatabase(t)
		o, err := trade.NewOrder(77, time.Now(), decimal.NewFromInt(5))
		require.NoError(t, err)

		err = NewGormOrderRepository(db).Create(ctx, o)
		require.Error(t, err)
		assert.True(t, shared.IsConstraintViolation(err))
	})

	t.Run("search matches customer id exactly", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormOrderRepository(db)
		c1 := createCustomer(t, db, "John", "Doe", "john@example.com", "555-0001")
		c2 := createCustomer(t, db, "Jane", "Roe", "jane@example.com", "555-0002")
		createOrder(t, db, c1.ID)
		createOrder(t, db, c2.ID)
		createOrder(t, db, c1.ID)

		orders, err := repo.List(ctx, shared.NewFilter("1"))
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Less(t, orders[0].ID, orders[1].ID)

		orders, err = repo.List(ctx, shared.NewFilter("abc"))
		require.NoError(t, err)
		assert.Empty(t, orders)

		all, err := repo.List(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update may move the order to another customer", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormOrderRepository(db)
		c1 := createCustomer(t, db, "John", "Doe", "john@example.com", "555-0001")
		c2 := createCustomer(t, db, "Jane", "Roe", "jane@example.com", "555-0002")
		o := createOrder(t, db, c1.ID)

		require.NoError(t, o.Update(c2.ID, time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("9.50")))
		require.NoError(t, repo.Update(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, c2.ID, found.CustomerID)
		assert.Equal(t, "9.50", found.TotalPrice.StringFixed(2))
	})

	t.Run("line items block delete", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormOrderRepository(db)
		c := createCustomer(t, db, "John", "Doe", "john@example.com", "555-0001")
		o := createOrder(t, db, c.ID)
		p := createProduct(t, db, "Apple Pie")

		item, err := trade.NewOrderLineItem(o.ID, p.ID, 1)
		require.NoError(t, err)
		require.NoError(t, NewGormOrderLineItemRepository(db).Create(ctx, item))

		referenced, err := repo.HasReferences(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, referenced)
		assert.True(t, shared.IsConstraintViolation(repo.Delete(ctx, o.ID)))
	})
}
