package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
)

// ReviewsPath is the review list route
const ReviewsPath = "/reviews"

// ReviewHandler handles review routes, addressed by /:product_id/:customer_id
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) reviewKey(c *gin.Context) (catalog.ReviewKey, bool) {
	productID, ok1 := pathID(c, "product_id")
	customerID, ok2 := pathID(c, "customer_id")
	if !ok1 || !ok2 {
		h.NotFound(c, fmt.Sprintf("Review %s/%s not found", c.Param("product_id"), c.Param("customer_id")))
		return catalog.ReviewKey{}, false
	}
	return catalog.ReviewKey{ProductID: productID, CustomerID: customerID}, true
}

// List returns all reviews, or those whose product or customer ID is ?search=
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        search query string false "Product or customer ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var query dto.SearchRequest
	_ = c.ShouldBindQuery(&query)

	reviews, err := h.reviewService.List(c.Request.Context(), query.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewListView(dto.EntityReview, reviews))
}

// AddForm describes the fields of a new review
//
// @Summary      Describe the review add form
// @Tags         reviews
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Router       /review/add [get]
func (h *ReviewHandler) AddForm(c *gin.Context) {
	h.Success(c, dto.NewFormView(dto.EntityReview, nil))
}

// Create adds a review and redirects to the list
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form formData ReviewForm true "Review fields"
// @Success      302 "Redirect to /reviews"
// @Header       302 {string} Location "/reviews"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /review/add [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.reviewService.Create(c.Request.Context(), cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ReviewsPath)
}

// EditForm returns a review with its form fields
//
// @Summary      Get a review with its edit form
// @Tags         reviews
// @Produce      json
// @Param        product_id path int true "Product ID"
// @Param        customer_id path int true "Customer ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /review/edit/{product_id}/{customer_id} [get]
func (h *ReviewHandler) EditForm(c *gin.Context) {
	key, ok := h.reviewKey(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetByKey(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewFormView(dto.EntityReview, review))
}

// Update replaces the text of a review
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        product_id path int true "Product ID"
// @Param        customer_id path int true "Customer ID"
// @Param        form formData ReviewEditForm true "Review fields"
// @Success      302 "Redirect to /reviews"
// @Header       302 {string} Location "/reviews"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /review/edit/{product_id}/{customer_id} [post]
func (h *ReviewHandler) Update(c *gin.Context) {
	key, ok := h.reviewKey(c)
	if !ok {
		return
	}

	var form ReviewEditForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.reviewService.Update(c.Request.Context(), key, form.Review); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ReviewsPath)
}

// Delete removes a review
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        product_id path int true "Product ID"
// @Param        customer_id path int true "Customer ID"
// @Success      302 "Redirect to /reviews"
// @Header       302 {string} Location "/reviews"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /review/delete/{product_id}/{customer_id} [post]
func (h *ReviewHandler) Delete(c *gin.Context) {
	key, ok := h.reviewKey(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), key); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ReviewsPath)
}
