package persistence

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderEntity = "Order"

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *Database) *GormOrderRepository {
	return &GormOrderRepository{db: db.DB}
}

// List returns orders ordered by ID. A search term matches the customer ID
// exactly; a non-numeric term matches nothing.
func (r *GormOrderRepository) List(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.HasSearch() {
		customerID, ok := filter.SearchID()
		if !ok {
			return []trade.Order{}, nil
		}
		query = query.Where("customer_id = ?", customerID)
	}

	var orderModels []models.OrderModel
	if err := query.Order("id").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, orderEntity, id)
	}
	return model.ToDomain(), nil
}

// Create inserts an order and assigns its generated ID
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, orderEntity, fmt.Sprintf("for customer %d", order.CustomerID))
	}
	order.ID = model.ID
	return nil
}

// Update overwrites every editable column of an existing order
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"customer_id": order.CustomerID,
			"order_date":  order.OrderDate,
			"total_price": order.TotalPrice,
		})
	if result.Error != nil {
		return translateError(result.Error, orderEntity, order.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(orderEntity, order.ID)
	}
	return nil
}

// Delete deletes an order by ID
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, orderEntity, id)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(orderEntity, id)
	}
	return nil
}

// Exists checks if an order with the ID exists
func (r *GormOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.OrderModel{}, "id = ?", id)
}

// HasReferences checks if any line item points at the order
func (r *GormOrderRepository) HasReferences(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.OrderLineItemModel{}, "order_id = ?", id)
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
