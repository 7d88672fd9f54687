package catalog

import (
	"fmt"

	"github.com/pieshop/admin/internal/domain/shared"
)

// ReviewKey is the composite primary key of a review
type ReviewKey struct {
	ProductID  int64
	CustomerID int64
}

// String renders the key as "product/customer"
func (k ReviewKey) String() string {
	return fmt.Sprintf("%d/%d", k.ProductID, k.CustomerID)
}

// Review is a customer's free-text opinion of a product.
// A customer reviews a given product at most once.
type Review struct {
	ProductID  int64
	CustomerID int64
	Text       string
}

// NewReview creates a new review
func NewReview(productID, customerID int64, text string) (*Review, error) {
	if err := shared.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	if err := shared.ValidateID("customer_id", customerID); err != nil {
		return nil, err
	}
	r := &Review{ProductID: productID, CustomerID: customerID}
	if err := r.UpdateText(text); err != nil {
		return nil, err
	}
	return r, nil
}

// Key returns the review's composite key
func (r *Review) Key() ReviewKey {
	return ReviewKey{ProductID: r.ProductID, CustomerID: r.CustomerID}
}

// UpdateText replaces the review text. The key is immutable.
func (r *Review) UpdateText(text string) error {
	if err := shared.ValidateRequired("review", text, 0); err != nil {
		return err
	}
	r.Text = text
	return nil
}
