package catalog

import (
	"context"
	"fmt"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReviewService handles review operations
type ReviewService struct {
	reviewRepo   catalog.ReviewRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// List returns reviews whose product or customer ID equals search
func (s *ReviewService) List(ctx context.Context, search string) ([]ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "list", telemetry.AttrSearch, search)
	defer span.End()

	reviews, err := s.reviewRepo.List(ctx, shared.NewFilter(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrCount, len(reviews))
	return ToReviewResponses(reviews), nil
}

// GetByKey retrieves a review by its composite key
func (s *ReviewService) GetByKey(ctx context.Context, key catalog.ReviewKey) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// Create adds a review. A customer reviews a product at most once.
func (s *ReviewService) Create(ctx context.Context, cmd ReviewCommand) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "create",
		telemetry.AttrProductID, cmd.ProductID,
		telemetry.AttrCustomerID, cmd.CustomerID,
	)
	defer span.End()

	review, err := catalog.NewReview(cmd.ProductID, cmd.CustomerID, cmd.Text)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, review.Key()); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Failed to create review", zap.Stringer("key", review.Key()), zap.Error(err))
		return nil, err
	}

	logger.L(ctx).Info("Review created", zap.Stringer("key", review.Key()))
	response := ToReviewResponse(review)
	return &response, nil
}

// Update replaces the text of an existing review
func (s *ReviewService) Update(ctx context.Context, key catalog.ReviewKey, text string) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "update", "key", key.String())
	defer span.End()

	review, err := s.reviewRepo.FindByKey(ctx, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := review.UpdateText(text); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Review updated", zap.Stringer("key", key))
	response := ToReviewResponse(review)
	return &response, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, key catalog.ReviewKey) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "delete", "key", key.String())
	defer span.End()

	if err := s.reviewRepo.Delete(ctx, key); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	logger.L(ctx).Info("Review deleted", zap.Stringer("key", key))
	return nil
}

// ensureReferences checks both referenced rows exist and the key is free
func (s *ReviewService) ensureReferences(ctx context.Context, key catalog.ReviewKey) error {
	ok, err := s.productRepo.Exists(ctx, key.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Product %d does not exist", key.ProductID))
	}

	ok, err = s.customerRepo.Exists(ctx, key.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Customer %d does not exist", key.CustomerID))
	}

	ok, err = s.reviewRepo.Exists(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return shared.NewConstraintViolation(fmt.Sprintf("Review %s already exists", key))
	}
	return nil
}
