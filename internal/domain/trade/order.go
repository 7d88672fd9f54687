package trade

import (
	"time"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is a purchase placed by a customer. TotalPrice is entered by staff
// and is not derived from the line items.
type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  time.Time
	TotalPrice decimal.Decimal
}

// NewOrder creates a new order
func NewOrder(customerID int64, orderDate time.Time, totalPrice decimal.Decimal) (*Order, error) {
	o := &Order{}
	if err := o.Update(customerID, orderDate, totalPrice); err != nil {
		return nil, err
	}
	return o, nil
}

// Update overwrites every editable field of the order
func (o *Order) Update(customerID int64, orderDate time.Time, totalPrice decimal.Decimal) error {
	if err := shared.ValidateID("customer_id", customerID); err != nil {
		return err
	}
	if orderDate.IsZero() {
		return shared.NewInvalidInputError("order_date", "is required")
	}
	if err := shared.ValidateMoney("total_price", totalPrice); err != nil {
		return err
	}

	o.CustomerID = customerID
	o.OrderDate = shared.DateOf(orderDate)
	o.TotalPrice = totalPrice
	return nil
}
