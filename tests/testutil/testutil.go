// Package testutil provides common test utilities for the pie shop admin.
// It contains helpers for opening throwaway stores, loading the sample
// dataset and driving the HTTP surface.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/internal/infrastructure/seed"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewSQLiteDatabase opens a migrated in-memory SQLite store that is closed
// when the test ends. A single connection keeps every query on one schema.
func NewSQLiteDatabase(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 60,
	}, nil)
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, db.AutoMigrate(context.Background()), "Failed to migrate schema")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewSQLiteFileDatabase opens a migrated SQLite store in a temporary file
// with a pool of conns connections, for tests that write concurrently.
func NewSQLiteFileDatabase(t *testing.T, conns int) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            filepath.Join(t.TempDir(), "pie_shop.db"),
		MaxOpenConns:    conns,
		MaxIdleConns:    conns,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 60,
	}, nil)
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, db.AutoMigrate(context.Background()), "Failed to migrate schema")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedSampleData loads the embedded sample dataset with plaintext passwords.
func SeedSampleData(t *testing.T, db *persistence.Database) {
	t.Helper()

	seeder := seed.NewSeeder(persistence.NewStore(db), auth.PlaintextHasher{}, zap.NewNop())
	require.NoError(t, seeder.Run(context.Background()), "Failed to seed sample data")
}

// MockDB wraps a Postgres GORM database with sqlmock for testing.
type MockDB struct {
	Database *persistence.Database
	Mock     sqlmock.Sqlmock
	SqlDB    *sql.DB
}

// NewMockDB creates a new mock Postgres database closed at test end.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() { _ = mockDB.Close() })
	return &MockDB{
		Database: &persistence.Database{DB: gormDB, Dialect: config.DriverPostgres},
		Mock:     mock,
		SqlDB:    mockDB,
	}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// ContextWithTimeout creates a context with a timeout for tests.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
