package catalog

import (
	"context"

	"github.com/pieshop/admin/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// List returns products whose name contains the search term, or all products when it is empty
	List(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts a new product and assigns its ID
	Create(ctx context.Context, product *Product) error

	// Update overwrites an existing product
	Update(ctx context.Context, product *Product) error

	// Delete deletes a product by ID
	Delete(ctx context.Context, id int64) error

	// Exists checks if a product with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// ExistsByName checks if a product other than excludeID uses the name
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// HasReferences checks if any review or order line item points at the product
	HasReferences(ctx context.Context, id int64) (bool, error)
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// List returns reviews whose product or customer ID equals the search term
	List(ctx context.Context, filter shared.Filter) ([]Review, error)

	// FindByKey finds a review by its composite key
	FindByKey(ctx context.Context, key ReviewKey) (*Review, error)

	// Create inserts a new review
	Create(ctx context.Context, review *Review) error

	// Update overwrites the text of an existing review
	Update(ctx context.Context, review *Review) error

	// Delete deletes a review by its composite key
	Delete(ctx context.Context, key ReviewKey) error

	// Exists checks if a review with the key exists
	Exists(ctx context.Context, key ReviewKey) (bool, error)
}
