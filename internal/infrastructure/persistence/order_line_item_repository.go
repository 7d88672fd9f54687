package persistence

import (
	"context"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const lineItemEntity = "Order_Product"

// GormOrderLineItemRepository implements OrderLineItemRepository using GORM
type GormOrderLineItemRepository struct {
	db *gorm.DB
}

// NewGormOrderLineItemRepository creates a new GormOrderLineItemRepository
func NewGormOrderLineItemRepository(db *Database) *GormOrderLineItemRepository {
	return &GormOrderLineItemRepository{db: db.DB}
}

// List returns line items ordered by key. A search term matches the order ID
// or the product ID exactly; a non-numeric term matches nothing.
func (r *GormOrderLineItemRepository) List(ctx context.Context, filter shared.Filter) ([]trade.OrderLineItem, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderLineItemModel{})
	if filter.HasSearch() {
		id, ok := filter.SearchID()
		if !ok {
			return []trade.OrderLineItem{}, nil
		}
		query = query.Where("order_id = ? OR product_id = ?", id, id)
	}

	var itemModels []models.OrderLineItemModel
	if err := query.Order("order_id").Order("product_id").Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]trade.OrderLineItem, len(itemModels))
	for i := range itemModels {
		items[i] = *itemModels[i].ToDomain()
	}
	return items, nil
}

// FindByKey finds a line item by its composite key
func (r *GormOrderLineItemRepository) FindByKey(ctx context.Context, key trade.LineItemKey) (*trade.OrderLineItem, error) {
	var model models.OrderLineItemModel
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", key.OrderID, key.ProductID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, lineItemEntity, key)
	}
	return model.ToDomain(), nil
}

// Create inserts a line item
func (r *GormOrderLineItemRepository) Create(ctx context.Context, item *trade.OrderLineItem) error {
	model := models.OrderLineItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, lineItemEntity, item.Key())
	}
	return nil
}

// Update overwrites the quantity of an existing line item
func (r *GormOrderLineItemRepository) Update(ctx context.Context, item *trade.OrderLineItem) error {
	key := item.Key()
	result := r.db.WithContext(ctx).
		Model(&models.OrderLineItemModel{}).
		Where("order_id = ? AND product_id = ?", key.OrderID, key.ProductID).
		Update("quantity", item.Quantity)
	if result.Error != nil {
		return translateError(result.Error, lineItemEntity, key)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(lineItemEntity, key)
	}
	return nil
}

// Delete deletes a line item by its composite key
func (r *GormOrderLineItemRepository) Delete(ctx context.Context, key trade.LineItemKey) error {
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", key.OrderID, key.ProductID).
		Delete(&models.OrderLineItemModel{})
	if result.Error != nil {
		return translateError(result.Error, lineItemEntity, key)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(lineItemEntity, key)
	}
	return nil
}

// Exists checks if a line item with the key exists
func (r *GormOrderLineItemRepository) Exists(ctx context.Context, key trade.LineItemKey) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.OrderLineItemModel{},
		"order_id = ? AND product_id = ?", key.OrderID, key.ProductID)
}

// Ensure GormOrderLineItemRepository implements OrderLineItemRepository
var _ trade.OrderLineItemRepository = (*GormOrderLineItemRepository)(nil)
