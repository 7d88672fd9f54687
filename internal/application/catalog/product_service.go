package catalog

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns products whose name contains search, or all products
func (s *ProductService) List(ctx context.Context, search string) ([]ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "list", telemetry.AttrSearch, search)
	defer span.End()

	products, err := s.productRepo.List(ctx, shared.NewFilter(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrCount, len(products))
	return ToProductResponses(products), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, cmd ProductCommand) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	if err := s.ensureNameAvailable(ctx, cmd.Name, 0); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	product, err := catalog.NewProduct(cmd.Name, cmd.Category, cmd.Description, cmd.Price, cmd.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Failed to create product", zap.String("name", cmd.Name), zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.AttrProductID, product.ID)
	logger.L(ctx).Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	response := ToProductResponse(product)
	return &response, nil
}

// Update overwrites every editable field of a product
func (s *ProductService) Update(ctx context.Context, id int64, cmd ProductCommand) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update", telemetry.AttrProductID, id)
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, cmd.Name, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := product.Update(cmd.Name, cmd.Category, cmd.Description, cmd.Price, cmd.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Product updated", zap.Int64("product_id", id))
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product that no review or line item references
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "delete", telemetry.AttrProductID, id)
	defer span.End()

	referenced, err := s.productRepo.HasReferences(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if referenced {
		err := shared.NewConstraintViolation(fmt.Sprintf("Product %d is referenced by reviews or order line items", id))
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *ProductService) ensureNameAvailable(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.productRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConstraintViolation(fmt.Sprintf("Product name %q already exists", name))
	}
	return nil
}
