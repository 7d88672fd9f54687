package integration

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	partnerapp "github.com/pieshop/admin/internal/application/partner"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/internal/infrastructure/seed"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/internal/interfaces/http/handler"
	"github.com/pieshop/admin/internal/interfaces/http/router"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

// seededServer reseeds the shared database and serves the admin console over it
func seededServer(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()

	testDB := NewTestDB(t)
	db := testDB.Database

	hasher := auth.NewBcryptHasher(4)
	require.NoError(t, seed.NewSeeder(persistence.NewStore(db), hasher, zap.NewNop()).Run(context.Background()))

	products := persistence.NewGormProductRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	orders := persistence.NewGormOrderRepository(db)
	items := persistence.NewGormOrderLineItemRepository(db)
	reviews := persistence.NewGormReviewRepository(db)

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:   config.HTTPConfig{MaxBodySize: 1 << 20},
		Logger: zap.NewNop(),
	}, router.Handlers{
		Product:  handler.NewProductHandler(catalogapp.NewProductService(products)),
		Customer: handler.NewCustomerHandler(partnerapp.NewCustomerService(customers, hasher)),
		Order:    handler.NewOrderHandler(tradeapp.NewOrderService(orders, customers)),
		LineItem: handler.NewOrderLineItemHandler(tradeapp.NewLineItemService(items, orders, products)),
		Review:   handler.NewReviewHandler(catalogapp.NewReviewService(reviews, products, customers)),
		System:   handler.NewSystemHandler(db),
	})
	require.NoError(t, err)
	return engine, testDB
}

func TestAdmin_Postgres_SeededListings(t *testing.T) {
	server, _ := seededServer(t)

	assert.Len(t, testutil.Records(t, testutil.Get(server, "/products")), 10)
	assert.Len(t, testutil.Records(t, testutil.Get(server, "/customers")), 10)
	assert.Len(t, testutil.Records(t, testutil.Get(server, "/reviews")), 12)
	assert.Len(t, testutil.Records(t, testutil.Get(server, "/order_items")), 64)

	orders := testutil.Records(t, testutil.Get(server, "/orders"))
	require.Len(t, orders, 34)
	assert.Equal(t, "135.90", orders[11]["total_price"])
	assert.Equal(t, "2025-02-28", orders[11]["order_date"])

	t.Run("search is case-sensitive", func(t *testing.T) {
		assert.Len(t, testutil.Records(t, testutil.Get(server, "/products?search=Apple")), 1)
		assert.Empty(t, testutil.Records(t, testutil.Get(server, "/products?search=apple")))
	})

	t.Run("wildcard characters match literally", func(t *testing.T) {
		assert.Empty(t, testutil.Records(t, testutil.Get(server, "/products?search=%25")))
		assert.Empty(t, testutil.Records(t, testutil.Get(server, "/products?search=_")))
	})

	t.Run("order search matches the customer ID", func(t *testing.T) {
		assert.Len(t, testutil.Records(t, testutil.Get(server, "/orders?search=3")), 12)
	})
}

func TestAdmin_Postgres_SequencesContinueAfterSeed(t *testing.T) {
	server, _ := seededServer(t)

	testutil.AssertRedirect(t, testutil.PostForm(server, "/product/add", url.Values{
		"name":        {"Plum pie"},
		"category":    {"Fruit"},
		"description": {"Late summer plums."},
		"price":       {"11.50"},
		"stock":       {"4"},
	}), "/products")

	records := testutil.Records(t, testutil.Get(server, "/products?search=Plum"))
	require.Len(t, records, 1)
	assert.EqualValues(t, 11, records[0]["id"])
	assert.Equal(t, "11.50", records[0]["price"])

	testutil.AssertRedirect(t, testutil.PostForm(server, "/order/add", url.Values{
		"customer_id": {"1"},
		"order_date":  {"2025-03-01"},
		"total_price": {"11.50"},
	}), "/orders")
	assert.Equal(t, http.StatusOK, testutil.Get(server, "/order/edit/35").Code)
}

func TestAdmin_Postgres_ReferentialRules(t *testing.T) {
	server, _ := seededServer(t)

	t.Run("referenced product cannot be deleted", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/delete/1", nil)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("duplicate review is rejected", func(t *testing.T) {
		w := testutil.PostForm(server, "/review/add", url.Values{
			"product_id":  {"7"},
			"customer_id": {"1"},
			"review":      {"Again!"},
		})
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("line item for an unknown order is rejected", func(t *testing.T) {
		w := testutil.PostForm(server, "/order_item/add", url.Values{
			"order_id":   {"999"},
			"product_id": {"1"},
			"quantity":   {"1"},
		})
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("order is deleted once its line items are gone", func(t *testing.T) {
		testutil.AssertRedirect(t, testutil.PostForm(server, "/order_item/delete/34/1", nil), "/order_items")
		testutil.AssertRedirect(t, testutil.PostForm(server, "/order/delete/34", nil), "/orders")
		testutil.AssertErrorResponse(t, testutil.PostForm(server, "/order/delete/34", nil), http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestAdmin_Postgres_CustomerPasswordsAreHashed(t *testing.T) {
	_, testDB := seededServer(t)

	customer, err := persistence.NewGormCustomerRepository(testDB.Database).FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", customer.Password)

	assert.True(t, auth.NewBcryptHasher(4).Verify(customer.Password, "password1"))
}

func TestAdmin_Postgres_RepositoryErrors(t *testing.T) {
	_, testDB := seededServer(t)
	repo := persistence.NewGormProductRepository(testDB.Database)

	_, err := repo.FindByID(context.Background(), 9999)
	assert.True(t, shared.IsNotFound(err))

	err = repo.Delete(context.Background(), 9999)
	assert.True(t, shared.IsNotFound(err))
}

func TestAdmin_Postgres_Health(t *testing.T) {
	server, _ := seededServer(t)

	w := testutil.Get(server, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	data := testutil.JSONResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "connected", data["database"])
}
