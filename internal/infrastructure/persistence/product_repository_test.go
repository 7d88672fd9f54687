package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and find round trips", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)

		p := createProduct(t, db, "Apple Pie")
		assert.Positive(t, p.ID)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Apple Pie", found.Name)
		assert.Equal(t, "Fruit", found.Category)
		assert.Equal(t, "12.99", found.Price.StringFixed(2))
		assert.Equal(t, 10, found.Stock)
	})

	t.Run("find missing returns not found", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDatabase(t))

		_, err := repo.FindByID(ctx, 99)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		assert.Equal(t, "Product 99 not found", err.Error())
	})

	t.Run("duplicate name is a constraint violation", func(t *testing.T) {
		db := newTestDatabase(t)
		createProduct(t, db, "Apple Pie")

		dup, err := catalog.NewProduct("Apple Pie", "Fruit", "again", decimal.NewFromInt(1), 1)
		require.NoError(t, err)
		err = NewGormProductRepository(db).Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, shared.IsConstraintViolation(err))
	})

	t.Run("list orders by id and searches name substrings", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)
		createProduct(t, db, "Pecan Pie")
		createProduct(t, db, "Apple Crumble")
		createProduct(t, db, "Apple Pie")

		all, err := repo.List(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Pecan Pie", all[0].Name)

		pies, err := repo.List(ctx, shared.NewFilter("Pie"))
		require.NoError(t, err)
		require.Len(t, pies, 2)
		assert.Equal(t, "Pecan Pie", pies[0].Name)
		assert.Equal(t, "Apple Pie", pies[1].Name)

		lower, err := repo.List(ctx, shared.NewFilter("pie"))
		require.NoError(t, err)
		assert.Empty(t, lower, "search is case-sensitive")

		wildcard, err := repo.List(ctx, shared.NewFilter("%"))
		require.NoError(t, err)
		assert.Empty(t, wildcard, "percent is literal")
	})

	t.Run("update overwrites fields including zero stock", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)
		p := createProduct(t, db, "Apple Pie")

		require.NoError(t, p.Update("Apple Pie XL", "Fruit", "bigger", decimal.RequireFromString("15.50"), 0))
		require.NoError(t, repo.Update(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Apple Pie XL", found.Name)
		assert.Equal(t, "15.50", found.Price.StringFixed(2))
		assert.Zero(t, found.Stock)
	})

	t.Run("update missing returns not found", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDatabase(t))
		p, err := catalog.NewProduct("Ghost", "None", "x", decimal.Zero, 0)
		require.NoError(t, err)
		p.ID = 42

		assert.True(t, shared.IsNotFound(repo.Update(ctx, p)))
	})

	t.Run("delete is strict", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)
		p := createProduct(t, db, "Apple Pie")

		require.NoError(t, repo.Delete(ctx, p.ID))
		exists, err := repo.Exists(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.True(t, shared.IsNotFound(repo.Delete(ctx, p.ID)))
	})

	t.Run("exists by name excludes self", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)
		p := createProduct(t, db, "Apple Pie")

		taken, err := repo.ExistsByName(ctx, "Apple Pie", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.ExistsByName(ctx, "Apple Pie", p.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("references block delete", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormProductRepository(db)
		p := createProduct(t, db, "Apple Pie")
		c := createCustomer(t, db, "John", "Doe", "john@example.com", "555-0001")
		o := createOrder(t, db, c.ID)

		referenced, err := repo.HasReferences(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, referenced)

		item, err := trade.NewOrderLineItem(o.ID, p.ID, 2)
		require.NoError(t, err)
		require.NoError(t, NewGormOrderLineItemRepository(db).Create(ctx, item))

		referenced, err = repo.HasReferences(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, referenced)

		err = repo.Delete(ctx, p.ID)
		require.Error(t, err)
		assert.True(t, shared.IsConstraintViolation(err))
	})
}

func TestGormProductRepository_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("search uses strpos", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE strpos(name, $1) > 0 ORDER BY id`)).
			WithArgs("Pie").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "description", "price", "stock"}).
				AddRow(1, "Apple Pie", "Fruit", "Classic", "12.99", 10))

		products, err := NewGormProductRepository(db).List(ctx, shared.NewFilter("Pie"))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Apple Pie", products[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is translated", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "products"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		p, err := catalog.NewProduct("Apple Pie", "Fruit", "Classic", decimal.RequireFromString("12.99"), 10)
		require.NoError(t, err)

		err = NewGormProductRepository(db).Create(ctx, p)
		require.Error(t, err)
		assert.True(t, shared.IsConstraintViolation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
