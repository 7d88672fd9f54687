package partner

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	hasher       auth.PasswordHasher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, hasher auth.PasswordHasher) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, hasher: hasher}
}

// List returns customers whose first or last name contains search
func (s *CustomerService) List(ctx context.Context, search string) ([]CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "list", telemetry.AttrSearch, search)
	defer span.End()

	customers, err := s.customerRepo.List(ctx, shared.NewFilter(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrCount, len(customers))
	return ToCustomerResponses(customers), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, cmd CustomerCommand) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "create")
	defer span.End()

	customer, err := partner.NewCustomer(cmd.profile(), cmd.Password)
	if err != nil {
		return nil, err
	}
	if err := s.ensureContactAvailable(ctx, cmd.Email, cmd.Phone, 0); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.setPassword(customer, cmd.Password); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Failed to create customer", zap.String("email", cmd.Email), zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.AttrCustomerID, customer.ID)
	logger.L(ctx).Info("Customer created", zap.Int64("customer_id", customer.ID))
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update overwrites a customer's profile, and the password when one is given
func (s *CustomerService) Update(ctx context.Context, id int64, cmd CustomerCommand) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "update", telemetry.AttrCustomerID, id)
	defer span.End()

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := customer.UpdateProfile(cmd.profile()); err != nil {
		return nil, err
	}
	if err := s.ensureContactAvailable(ctx, cmd.Email, cmd.Phone, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	passwordChanged := cmd.Password != ""
	if passwordChanged {
		if err := s.setPassword(customer, cmd.Password); err != nil {
			return nil, err
		}
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Customer updated",
		zap.Int64("customer_id", id),
		zap.Bool("password_changed", passwordChanged),
	)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer with no orders or reviews
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "delete", telemetry.AttrCustomerID, id)
	defer span.End()

	referenced, err := s.customerRepo.HasReferences(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if referenced {
		err := shared.NewConstraintViolation(fmt.Sprintf("Customer %d is referenced by orders or reviews", id))
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}

func (s *CustomerService) setPassword(customer *partner.Customer, password string) error {
	if err := customer.ChangePassword(password); err != nil {
		return err
	}
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return shared.NewInvalidInputError("password", err.Error())
	}
	customer.Password = stored
	return nil
}

func (s *CustomerService) ensureContactAvailable(ctx context.Context, email, phone string, excludeID int64) error {
	taken, err := s.customerRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConstraintViolation(fmt.Sprintf("Customer email %q already exists", email))
	}

	taken, err = s.customerRepo.ExistsByPhone(ctx, phone, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConstraintViolation(fmt.Sprintf("Customer phone %q already exists", phone))
	}
	return nil
}
