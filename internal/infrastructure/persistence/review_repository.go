package persistence

import (
	"context"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reviewEntity = "Review"

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *Database) *GormReviewRepository {
	return &GormReviewRepository{db: db.DB}
}

// List returns reviews ordered by key. A search term matches the product ID
// or the customer ID exactly; a non-numeric term matches nothing.
func (r *GormReviewRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Review, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	if filter.HasSearch() {
		id, ok := filter.SearchID()
		if !ok {
			return []catalog.Review{}, nil
		}
		query = query.Where("product_id = ? OR customer_id = ?", id, id)
	}

	var reviewModels []models.ReviewModel
	if err := query.Order("product_id").Order("customer_id").Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]catalog.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = *reviewModels[i].ToDomain()
	}
	return reviews, nil
}

// FindByKey finds a review by its composite key
func (r *GormReviewRepository) FindByKey(ctx context.Context, key catalog.ReviewKey) (*catalog.Review, error) {
	var model models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ?", key.ProductID, key.CustomerID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, reviewEntity, key)
	}
	return model.ToDomain(), nil
}

// Create inserts a review
func (r *GormReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	model := models.ReviewModelFromDomain(review)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, reviewEntity, review.Key())
	}
	return nil
}

// Update overwrites the text of an existing review
func (r *GormReviewRepository) Update(ctx context.Context, review *catalog.Review) error {
	key := review.Key()
	result := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ? AND customer_id = ?", key.ProductID, key.CustomerID).
		Update("review", review.Text)
	if result.Error != nil {
		return translateError(result.Error, reviewEntity, key)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(reviewEntity, key)
	}
	return nil
}

// Delete deletes a review by its composite key
func (r *GormReviewRepository) Delete(ctx context.Context, key catalog.ReviewKey) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ?", key.ProductID, key.CustomerID).
		Delete(&models.ReviewModel{})
	if result.Error != nil {
		return translateError(result.Error, reviewEntity, key)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(reviewEntity, key)
	}
	return nil
}

// Exists checks if a review with the key exists
func (r *GormReviewRepository) Exists(ctx context.Context, key catalog.ReviewKey) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ReviewModel{},
		"product_id = ? AND customer_id = ?", key.ProductID, key.CustomerID)
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
