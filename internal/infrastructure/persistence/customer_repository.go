package persistence

import (
	"context"

	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const customerEntity = "Customer"

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db      *gorm.DB
	dialect string
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *Database) *GormCustomerRepository {
	return &GormCustomerRepository{db: db.DB, dialect: db.Dialect}
}

// List returns customers ordered by ID, narrowed to those whose first or last
// name contains the search term
func (r *GormCustomerRepository) List(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if filter.HasSearch() {
		query = query.Where(
			containsClause(r.dialect, "first_name")+" OR "+containsClause(r.dialect, "last_name"),
			filter.Search, filter.Search,
		)
	}

	var customerModels []models.CustomerModel
	if err := query.Order("id").Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, customerEntity, id)
	}
	return model.ToDomain(), nil
}

// Create inserts a customer and assigns its generated ID
func (r *GormCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, customerEntity, customer.Email)
	}
	customer.ID = model.ID
	return nil
}

// Update overwrites every column of an existing customer
func (r *GormCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"first_name":        customer.FirstName,
			"last_name":         customer.LastName,
			"email":             customer.Email,
			"password":          customer.Password,
			"phone":             customer.Phone,
			"registration_date": customer.RegistrationDate,
		})
	if result.Error != nil {
		return translateError(result.Error, customerEntity, customer.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(customerEntity, customer.ID)
	}
	return nil
}

// Delete deletes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, customerEntity, id)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(customerEntity, id)
	}
	return nil
}

// Exists checks if a customer with the ID exists
func (r *GormCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.CustomerModel{}, "id = ?", id)
}

// ExistsByEmail checks if a customer other than excludeID already uses the email
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.CustomerModel{}, "email = ? AND id <> ?", email, excludeID)
}

// ExistsByPhone checks if a customer other than excludeID already uses the phone
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.CustomerModel{}, "phone = ? AND id <> ?", phone, excludeID)
}

// HasReferences checks if any order or review points at the customer
func (r *GormCustomerRepository) HasReferences(ctx context.Context, id int64) (bool, error) {
	db := r.db.WithContext(ctx)
	ordered, err := exists(db, &models.OrderModel{}, "customer_id = ?", id)
	if err != nil || ordered {
		return ordered, err
	}
	return exists(db, &models.ReviewModel{}, "customer_id = ?", id)
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
