package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
)

// OrderItemsPath is the line item list route, the target of every line item write
const OrderItemsPath = "/order_items"

// OrderLineItemHandler handles order line item routes.
// Rows are addressed by /:order_id/:product_id.
type OrderLineItemHandler struct {
	BaseHandler
	lineItemService *tradeapp.LineItemService
}

// NewOrderLineItemHandler creates a new OrderLineItemHandler
func NewOrderLineItemHandler(lineItemService *tradeapp.LineItemService) *OrderLineItemHandler {
	return &OrderLineItemHandler{lineItemService: lineItemService}
}

// lineItemKey reads the composite key from the path, answering 404 itself
// when either segment is not an integer.
func (h *OrderLineItemHandler) lineItemKey(c *gin.Context) (trade.LineItemKey, bool) {
	orderID, ok1 := pathID(c, "order_id")
	productID, ok2 := pathID(c, "product_id")
	if !ok1 || !ok2 {
		h.NotFound(c, fmt.Sprintf("Order line item %s/%s not found", c.Param("order_id"), c.Param("product_id")))
		return trade.LineItemKey{}, false
	}
	return trade.LineItemKey{OrderID: orderID, ProductID: productID}, true
}

// List returns all line items, or those whose order or product ID is ?search=
//
// @Summary      List order line items
// @Tags         order_items
// @Produce      json
// @Param        search query string false "Order or product ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order_items [get]
func (h *OrderLineItemHandler) List(c *gin.Context) {
	var query dto.SearchRequest
	_ = c.ShouldBindQuery(&query)

	items, err := h.lineItemService.List(c.Request.Context(), query.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewListView(dto.EntityOrderLineItem, items))
}

// AddForm describes the fields of a new line item
//
// @Summary      Describe the order line item add form
// @Tags         order_items
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Router       /order_item/add [get]
func (h *OrderLineItemHandler) AddForm(c *gin.Context) {
	h.Success(c, dto.NewFormView(dto.EntityOrderLineItem, nil))
}

// Create adds a line item and redirects to the list
//
// @Summary      Create a order line item
// @Tags         order_items
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form formData LineItemForm true "Order line item fields"
// @Success      302 "Redirect to /order_items"
// @Header       302 {string} Location "/order_items"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order_item/add [post]
func (h *OrderLineItemHandler) Create(c *gin.Context) {
	var form LineItemForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.lineItemService.Create(c.Request.Context(), cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrderItemsPath)
}

// EditForm returns a line item with its form fields
//
// @Summary      Get a order line item with its edit form
// @Tags         order_items
// @Produce      json
// @Param        order_id path int true "Order ID"
// @Param        product_id path int true "Product ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order_item/edit/{order_id}/{product_id} [get]
func (h *OrderLineItemHandler) EditForm(c *gin.Context) {
	key, ok := h.lineItemKey(c)
	if !ok {
		return
	}

	item, err := h.lineItemService.GetByKey(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewFormView(dto.EntityOrderLineItem, item))
}

// Update changes the quantity of a line item and redirects to the list
//
// @Summary      Update a order line item
// @Tags         order_items
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        order_id path int true "Order ID"
// @Param        product_id path int true "Product ID"
// @Param        form formData LineItemEditForm true "Order line item fields"
// @Success      302 "Redirect to /order_items"
// @Header       302 {string} Location "/order_items"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order_item/edit/{order_id}/{product_id} [post]
func (h *OrderLineItemHandler) Update(c *gin.Context) {
	key, ok := h.lineItemKey(c)
	if !ok {
		return
	}

	var form LineItemEditForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	quantity, err := form.quantity()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.lineItemService.Update(c.Request.Context(), key, quantity); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrderItemsPath)
}

// Delete removes a line item and redirects to the list
//
// @Summary      Delete a order line item
// @Tags         order_items
// @Produce      json
// @Param        order_id path int true "Order ID"
// @Param        product_id path int true "Product ID"
// @Success      302 "Redirect to /order_items"
// @Header       302 {string} Location "/order_items"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order_item/delete/{order_id}/{product_id} [post]
func (h *OrderLineItemHandler) Delete(c *gin.Context) {
	key, ok := h.lineItemKey(c)
	if !ok {
		return
	}

	if err := h.lineItemService.Delete(c.Request.Context(), key); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrderItemsPath)
}
