package persistence

import (
	"github.com/pieshop/admin/internal/infrastructure/config"
	"gorm.io/gorm"
)

// containsClause returns a case-sensitive substring predicate on column with
// one placeholder for the needle. LIKE is avoided so that % and _ match literally.
func containsClause(dialect, column string) string {
	if dialect == config.DriverPostgres {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

// exists reports whether any row of model matches the condition
func exists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
