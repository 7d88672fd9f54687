package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createProduct(t *testing.T, db *Database, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "Fruit", name+" description", decimal.RequireFromString("12.99"), 10)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Create(context.Background(), p))
	return p
}

func createCustomer(t *testing.T, db *Database, first, last, email, phone string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partner.CustomerProfile{
		FirstName:        first,
		LastName:         last,
		Email:            email,
		Phone:            phone,
		RegistrationDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
	}, "secret")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Create(context.Background(), c))
	return c
}

func createOrder(t *testing.T, db *Database, customerID int64) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(customerID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("25.98"))
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), o))
	return o
}
