package persistence

import (
	"errors"
	"fmt"

	"github.com/pieshop/admin/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto domain errors. GORM translates driver
// errors into ErrDuplicatedKey and ErrForeignKeyViolated because the
// connection is opened with TranslateError.
func translateError(err error, entity string, key any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConstraintViolation(fmt.Sprintf("%s %v conflicts with an existing record", entity, key))
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.NewConstraintViolation(fmt.Sprintf("%s %v breaks a column check", entity, key))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConstraintViolation(fmt.Sprintf("%s %v references a missing record or is still referenced", entity, key))
	default:
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}
}
