package trade

import (
	"context"

	"github.com/pieshop/admin/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// List returns orders whose customer ID equals the search term
	List(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByID finds an order by ID
	FindByID(ctx context.Context, id int64) (*Order, error)

	// Create inserts a new order and assigns its ID
	Create(ctx context.Context, order *Order) error

	// Update overwrites an existing order
	Update(ctx context.Context, order *Order) error

	// Delete deletes an order by ID
	Delete(ctx context.Context, id int64) error

	// Exists checks if an order with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// HasReferences checks if any line item points at the order
	HasReferences(ctx context.Context, id int64) (bool, error)
}

// OrderLineItemRepository defines the interface for order line item persistence
type OrderLineItemRepository interface {
	// List returns line items whose order or product ID equals the search term
	List(ctx context.Context, filter shared.Filter) ([]OrderLineItem, error)

	// FindByKey finds a line item by its composite key
	FindByKey(ctx context.Context, key LineItemKey) (*OrderLineItem, error)

	// Create inserts a new line item
	Create(ctx context.Context, item *OrderLineItem) error

	// Update overwrites the quantity of an existing line item
	Update(ctx context.Context, item *OrderLineItem) error

	// Delete deletes a line item by its composite key
	Delete(ctx context.Context, key LineItemKey) error

	// Exists checks if a line item with the key exists
	Exists(ctx context.Context, key LineItemKey) (bool, error)
}
