package partner

import (
	"context"

	"github.com/pieshop/admin/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// List returns customers whose first or last name contains the search term
	List(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// Create inserts a new customer and assigns its ID
	Create(ctx context.Context, customer *Customer) error

	// Update overwrites an existing customer
	Update(ctx context.Context, customer *Customer) error

	// Delete deletes a customer by ID
	Delete(ctx context.Context, id int64) error

	// Exists checks if a customer with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// ExistsByEmail checks if a customer other than excludeID uses the email
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)

	// ExistsByPhone checks if a customer other than excludeID uses the phone
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)

	// HasReferences checks if any order or review points at the customer
	HasReferences(ctx context.Context, id int64) (bool, error)
}
