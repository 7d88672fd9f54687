package trade

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LineItemService handles order line item operations
type LineItemService struct {
	itemRepo    trade.OrderLineItemRepository
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
}

// NewLineItemService creates a new LineItemService
func NewLineItemService(
	itemRepo trade.OrderLineItemRepository,
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
) *LineItemService {
	return &LineItemService{
		itemRepo:    itemRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// List returns line items whose order or product ID equals search
func (s *LineItemService) List(ctx context.Context, search string) ([]LineItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_line_item", "list", telemetry.AttrSearch, search)
	defer span.End()

	items, err := s.itemRepo.List(ctx, shared.NewFilter(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrCount, len(items))
	return ToLineItemResponses(items), nil
}

// GetByKey retrieves a line item by its composite key
func (s *LineItemService) GetByKey(ctx context.Context, key trade.LineItemKey) (*LineItemResponse, error) {
	item, err := s.itemRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	response := ToLineItemResponse(item)
	return &response, nil
}

// Create adds a product to an order. An order lists a product at most once.
func (s *LineItemService) Create(ctx context.Context, cmd LineItemCommand) (*LineItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_line_item", "create",
		telemetry.AttrOrderID, cmd.OrderID,
		telemetry.AttrProductID, cmd.ProductID,
	)
	defer span.End()

	item, err := trade.NewOrderLineItem(cmd.OrderID, cmd.ProductID, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, item.Key()); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Failed to create order line item", zap.Stringer("key", item.Key()), zap.Error(err))
		return nil, err
	}

	logger.L(ctx).Info("Order line item created", zap.Stringer("key", item.Key()), zap.Int("quantity", item.Quantity))
	response := ToLineItemResponse(item)
	return &response, nil
}

// Update changes the quantity of a line item
func (s *LineItemService) Update(ctx context.Context, key trade.LineItemKey, quantity int) (*LineItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_line_item", "update", "key", key.String())
	defer span.End()

	item, err := s.itemRepo.FindByKey(ctx, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := item.UpdateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Order line item updated", zap.Stringer("key", key), zap.Int("quantity", quantity))
	response := ToLineItemResponse(item)
	return &response, nil
}

// Delete removes a line item
func (s *LineItemService) Delete(ctx context.Context, key trade.LineItemKey) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_line_item", "delete", "key", key.String())
	defer span.End()

	if err := s.itemRepo.Delete(ctx, key); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	logger.L(ctx).Info("Order line item deleted", zap.Stringer("key", key))
	return nil
}

func (s *LineItemService) ensureReferences(ctx context.Context, key trade.LineItemKey) error {
	ok, err := s.orderRepo.Exists(ctx, key.OrderID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Order %d does not exist", key.OrderID))
	}

	ok, err = s.productRepo.Exists(ctx, key.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Product %d does not exist", key.ProductID))
	}

	ok, err = s.itemRepo.Exists(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Order %d already lists product %d", key.OrderID, key.ProductID))
	}
	return nil
}
