package trade

import (
	"fmt"

	"github.com/pieshop/admin/internal/domain/shared"
)

// LineItemKey is the composite primary key of an order line item
type LineItemKey struct {
	OrderID   int64
	ProductID int64
}

// String renders the key as "order/product"
func (k LineItemKey) String() string {
	return fmt.Sprintf("%d/%d", k.OrderID, k.ProductID)
}

// OrderLineItem records how many units of a product an order contains.
// An order lists a given product at most once.
type OrderLineItem struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// NewOrderLineItem creates a new line item
func NewOrderLineItem(orderID, productID int64, quantity int) (*OrderLineItem, error) {
	if err := shared.ValidateID("order_id", orderID); err != nil {
		return nil, err
	}
	if err := shared.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	item := &OrderLineItem{OrderID: orderID, ProductID: productID}
	if err := item.UpdateQuantity(quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// Key returns the line item's composite key
func (i *OrderLineItem) Key() LineItemKey {
	return LineItemKey{OrderID: i.OrderID, ProductID: i.ProductID}
}

// UpdateQuantity replaces the quantity. The key is immutable.
func (i *OrderLineItem) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewInvalidInputError("quantity", "must be greater than zero")
	}
	i.Quantity = quantity
	return nil
}
