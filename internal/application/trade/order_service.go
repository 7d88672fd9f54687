package trade

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService handles order operations. TotalPrice is taken as entered.
type OrderService struct {
	orderRepo    trade.OrderRepository
	customerRepo partner.CustomerRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, customerRepo partner.CustomerRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, customerRepo: customerRepo}
}

// List returns orders placed by the customer whose ID equals search
func (s *OrderService) List(ctx context.Context, search string) ([]OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list", telemetry.AttrSearch, search)
	defer span.End()

	orders, err := s.orderRepo.List(ctx, shared.NewFilter(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrCount, len(orders))
	return ToOrderResponses(orders), nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Create places an order for an existing customer
func (s *OrderService) Create(ctx context.Context, cmd OrderCommand) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create", telemetry.AttrCustomerID, cmd.CustomerID)
	defer span.End()

	order, err := trade.NewOrder(cmd.CustomerID, cmd.OrderDate, cmd.TotalPrice)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCustomer(ctx, cmd.CustomerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Failed to create order", zap.Int64("customer_id", cmd.CustomerID), zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.AttrOrderID, order.ID)
	logger.L(ctx).Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
	)
	response := ToOrderResponse(order)
	return &response, nil
}

// Update overwrites customer, date and total of an order
func (s *OrderService) Update(ctx context.Context, id int64, cmd OrderCommand) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update", telemetry.AttrOrderID, id)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := order.Update(cmd.CustomerID, cmd.OrderDate, cmd.TotalPrice); err != nil {
		return nil, err
	}
	if err := s.ensureCustomer(ctx, cmd.CustomerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Order updated", zap.Int64("order_id", id))
	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order that has no line items
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "delete", telemetry.AttrOrderID, id)
	defer span.End()

	referenced, err := s.orderRepo.HasReferences(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if referenced {
		err := shared.NewConstraintViolation(fmt.Sprintf("Order %d still has line items", id))
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

func (s *OrderService) ensureCustomer(ctx context.Context, customerID int64) error {
	ok, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Customer %d does not exist", customerID))
	}
	return nil
}
