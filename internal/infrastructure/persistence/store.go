package persistence

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bulkBatchSize = 100

// serialTables lists the tables whose primary key is generated by the store
var serialTables = []string{"products", "customers", "orders"}

// Store performs whole-dataset operations that bypass the entity repositories.
// It is used to load fixture data with pre-assigned keys.
type Store struct {
	db      *gorm.DB
	dialect string
}

// NewStore creates a Store on the given database
func NewStore(db *Database) *Store {
	return &Store{db: db.DB, dialect: db.Dialect}
}

// WithinTransaction runs fn with a Store bound to a single transaction
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, dialect: s.dialect})
	})
}

// ClearAll deletes every row, children before parents
func (s *Store) ClearAll(ctx context.Context) error {
	db := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.OrderLineItemModel{},
		&models.ReviewModel{},
		&models.OrderModel{},
		&models.CustomerModel{},
		&models.ProductModel{},
	} {
		if err := db.Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// BulkInsertProducts inserts products keeping their IDs
func (s *Store) BulkInsertProducts(ctx context.Context, products []catalog.Product) error {
	rows := make([]*models.ProductModel, len(products))
	for i := range products {
		rows[i] = models.ProductModelFromDomain(&products[i])
	}
	return s.insert(ctx, "products", rows, len(rows))
}

// BulkInsertCustomers inserts customers keeping their IDs
func (s *Store) BulkInsertCustomers(ctx context.Context, customers []partner.Customer) error {
	rows := make([]*models.CustomerModel, len(customers))
	for i := range customers {
		rows[i] = models.CustomerModelFromDomain(&customers[i])
	}
	return s.insert(ctx, "customers", rows, len(rows))
}

// BulkInsertOrders inserts orders keeping their IDs
func (s *Store) BulkInsertOrders(ctx context.Context, orders []trade.Order) error {
	rows := make([]*models.OrderModel, len(orders))
	for i := range orders {
		rows[i] = models.OrderModelFromDomain(&orders[i])
	}
	return s.insert(ctx, "orders", rows, len(rows))
}

// BulkInsertReviews inserts reviews
func (s *Store) BulkInsertReviews(ctx context.Context, reviews []catalog.Review) error {
	rows := make([]*models.ReviewModel, len(reviews))
	for i := range reviews {
		rows[i] = models.ReviewModelFromDomain(&reviews[i])
	}
	return s.insert(ctx, "reviews", rows, len(rows))
}

// BulkInsertLineItems inserts order line items
func (s *Store) BulkInsertLineItems(ctx context.Context, items []trade.OrderLineItem) error {
	rows := make([]*models.OrderLineItemModel, len(items))
	for i := range items {
		rows[i] = models.OrderLineItemModelFromDomain(&items[i])
	}
	return s.insert(ctx, "order_line_items", rows, len(rows))
}

func (s *Store) insert(ctx context.Context, table string, rows any, n int) error {
	if n == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(rows, bulkBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return nil
}

// ResetSequences moves Postgres key sequences past the highest stored ID so
// that rows inserted with explicit keys do not collide with generated ones.
// SQLite derives the next key from the table itself.
func (s *Store) ResetSequences(ctx context.Context) error {
	if s.dialect != config.DriverPostgres {
		return nil
	}
	db := s.db.WithContext(ctx)
	for _, table := range serialTables {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return nil
}
