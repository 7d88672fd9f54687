package handler_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	partnerapp "github.com/pieshop/admin/internal/application/partner"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/internal/interfaces/http/handler"
	"github.com/pieshop/admin/internal/interfaces/http/router"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer serves the full admin console over a seeded in-memory store
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.NewSQLiteDatabase(t)
	testutil.SeedSampleData(t, db)
	return newEngine(t, db, handler.NewSystemHandler(db))
}

func newEngine(t *testing.T, db *persistence.Database, system *handler.SystemHandler) *gin.Engine {
	t.Helper()

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
		Customer: handler.NewCustomerHandler(partnerapp.NewCustomerService(customers, auth.PlaintextHasher{})),
		Order:    handler.NewOrderHandler(tradeapp.NewOrderService(orders, customers)),
		LineItem: handler.NewOrderLineItemHandler(tradeapp.NewLineItemService(items, orders, products)),
		Review:   handler.NewReviewHandler(catalogapp.NewReviewService(reviews, products, customers)),
		System:   system,
	})
	require.NoError(t, err)
	return engine
}

func names(records []map[string]any) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r["name"].(string)
	}
	return out
}
