package persistence

import (
	"context"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productEntity = "Product"

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db      *gorm.DB
	dialect string
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *Database) *GormProductRepository {
	return &GormProductRepository{db: db.DB, dialect: db.Dialect}
}

// List returns products ordered by ID, narrowed to names containing the search term
func (r *GormProductRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if filter.HasSearch() {
		query = query.Where(containsClause(r.dialect, "name"), filter.Search)
	}

	var productModels []models.ProductModel
	if err := query.Order("id").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, productEntity, id)
	}
	return model.ToDomain(), nil
}

// Create inserts a product and assigns its generated ID
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, productEntity, product.Name)
	}
	product.ID = model.ID
	return nil
}

// Update overwrites every editable column of an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"category":    product.Category,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
		})
	if result.Error != nil {
		return translateError(result.Error, productEntity, product.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(productEntity, product.ID)
	}
	return nil
}

// Delete deletes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, productEntity, id)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(productEntity, id)
	}
	return nil
}

// Exists checks if a product with the ID exists
func (r *GormProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ProductModel{}, "id = ?", id)
}

// ExistsByName checks if a product other than excludeID already uses the name
func (r *GormProductRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ProductModel{}, "name = ? AND id <> ?", name, excludeID)
}

// HasReferences checks if any review or order line item points at the product
func (r *GormProductRepository) HasReferences(ctx context.Context, id int64) (bool, error) {
	db := r.db.WithContext(ctx)
	reviewed, err := exists(db, &models.ReviewModel{}, "product_id = ?", id)
	if err != nil || reviewed {
		return reviewed, err
	}
	return exists(db, &models.OrderLineItemModel{}, "product_id = ?", id)
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
