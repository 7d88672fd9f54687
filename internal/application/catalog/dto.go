package catalog

import (
	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductCommand carries the typed fields of a product add or edit
type ProductCommand struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// ReviewCommand carries the typed fields of a review add.
// On edit only Text is applied.
type ReviewCommand struct {
	ProductID  int64
	CustomerID int64
	Text       string
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ProductID  int64  `json:"product_id"`
	CustomerID int64  `json:"customer_id"`
	Review     string `json:"review"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToReviewResponse converts a domain review to a response
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Review:     r.Text,
	}
}

// ToReviewResponses converts a slice of reviews
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}
