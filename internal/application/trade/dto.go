package trade

import (
	"time"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderCommand carries the typed fields of an order add or edit
type OrderCommand struct {
	CustomerID int64
	OrderDate  time.Time
	TotalPrice decimal.Decimal
}

// LineItemCommand carries the typed fields of a line item add.
// On edit only Quantity is applied.
type LineItemCommand struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	OrderDate  string `json:"order_date"`
	TotalPrice string `json:"total_price"`
}

// LineItemResponse represents an order line item in API responses
type LineItemResponse struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate.Format(shared.DateLayout),
		TotalPrice: o.TotalPrice.StringFixed(2),
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToLineItemResponse converts a domain line item to a response
func ToLineItemResponse(i *trade.OrderLineItem) LineItemResponse {
	return LineItemResponse{OrderID: i.OrderID, ProductID: i.ProductID, Quantity: i.Quantity}
}

// ToLineItemResponses converts a slice of line items
func ToLineItemResponses(items []trade.OrderLineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i := range items {
		out[i] = ToLineItemResponse(&items[i])
	}
	return out
}
