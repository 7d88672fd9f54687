package catalog

import (
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Column limits
const (
	MaxProductNameLength     = 255
	MaxProductCategoryLength = 255
)

// Product represents a pie offered by the shop
type Product struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// NewProduct creates a new product. The ID is assigned by the store.
func NewProduct(name, category, description string, price decimal.Decimal, stock int) (*Product, error) {
	p := &Product{}
	if err := p.Update(name, category, description, price, stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites every editable field of the product
func (p *Product) Update(name, category, description string, price decimal.Decimal, stock int) error {
	if err := shared.ValidateRequired("name", name, MaxProductNameLength); err != nil {
		return err
	}
	if err := shared.ValidateRequired("category", category, MaxProductCategoryLength); err != nil {
		return err
	}
	if err := shared.ValidateRequired("description", description, 0); err != nil {
		return err
	}
	if err := shared.ValidateMoney("price", price); err != nil {
		return err
	}
	if stock < 0 {
		return shared.NewInvalidInputError("stock", "cannot be negative")
	}

	p.Name = name
	p.Category = category
	p.Description = description
	p.Price = price
	p.Stock = stock
	return nil
}
