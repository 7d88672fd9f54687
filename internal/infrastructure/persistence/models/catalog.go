package models

import (
	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_products_name"`
	Category    string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

// ReviewModel is the persistence model for the Review entity.
// The composite primary key (product_id, customer_id) admits one review per pair.
type ReviewModel struct {
	ProductID  int64          `gorm:"primaryKey;autoIncrement:false"`
	CustomerID int64          `gorm:"primaryKey;autoIncrement:false;index:idx_reviews_customer_id"`
	Review     string         `gorm:"column:review;type:text;not null"`
	Product    *ProductModel  `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Customer   *CustomerModel `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		ProductID:  m.ProductID,
		CustomerID: m.CustomerID,
		Text:       m.Review,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review entity.
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	return &ReviewModel{
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Review:     r.Text,
	}
}
