package models

import (
	"time"

	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order entity.
type OrderModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID int64           `gorm:"not null;index:idx_orders_customer_id"`
	OrderDate  time.Time       `gorm:"type:date;not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Customer   *CustomerModel  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		OrderDate:  m.OrderDate.UTC(),
		TotalPrice: m.TotalPrice,
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	return &OrderModel{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice,
	}
}

// OrderLineItemModel is the persistence model for the OrderLineItem entity.
// The composite primary key (order_id, product_id) admits one line per product per order.
type OrderLineItemModel struct {
	OrderID   int64         `gorm:"primaryKey;autoIncrement:false"`
	ProductID int64         `gorm:"primaryKey;autoIncrement:false;index:idx_order_line_items_product_id"`
	Quantity  int           `gorm:"not null"`
	Order     *OrderModel   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string {
	return "order_line_items"
}

// ToDomain converts the persistence model to a domain OrderLineItem entity.
func (m *OrderLineItemModel) ToDomain() *trade.OrderLineItem {
	return &trade.OrderLineItem{
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
	}
}

// OrderLineItemModelFromDomain creates a persistence model from a domain OrderLineItem entity.
func OrderLineItemModelFromDomain(i *trade.OrderLineItem) *OrderLineItemModel {
	return &OrderLineItemModel{
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
	}
}
