package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
)

// OrdersPath is the order list route, the target of every order write
const OrdersPath = "/orders"

// OrderHandler handles order routes
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns all orders, or those of the customer whose ID is ?search=
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        search query string false "Customer ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query dto.SearchRequest
	_ = c.ShouldBindQuery(&query)

	orders, err := h.orderService.List(c.Request.Context(), query.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewListView(dto.EntityOrder, orders))
}

// AddForm describes the fields of a new order
//
// @Summary      Describe the order add form
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Router       /order/add [get]
func (h *OrderHandler) AddForm(c *gin.Context) {
	h.Success(c, dto.NewFormView(dto.EntityOrder, nil))
}

// Create adds an order and redirects to the list
//
// @Summary      Create a order
// @Tags         orders
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form formData OrderForm true "Order fields"
// @Success      302 "Redirect to /orders"
// @Header       302 {string} Location "/orders"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order/add [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var form OrderForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.orderService.Create(c.Request.Context(), cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrdersPath)
}

// EditForm returns an order with its form fields
//
// @Summary      Get a order with its edit form
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order/edit/{id} [get]
func (h *OrderHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Order %s not found", c.Param("id")))
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewFormView(dto.EntityOrder, order))
}

// Update overwrites an order and redirects to the list
//
// @Summary      Update a order
// @Tags         orders
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        form formData OrderForm true "Order fields"
// @Success      302 "Redirect to /orders"
// @Header       302 {string} Location "/orders"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order/edit/{id} [post]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Order %s not found", c.Param("id")))
		return
	}

	var form OrderForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.orderService.Update(c.Request.Context(), id, cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrdersPath)
}

// Delete removes an order and redirects to the list
//
// @Summary      Delete a order
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      302 "Redirect to /orders"
// @Header       302 {string} Location "/orders"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order/delete/{id} [post]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Order %s not found", c.Param("id")))
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, OrdersPath)
}
