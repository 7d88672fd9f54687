package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/pieshop/admin/internal/application/partner"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
)

// CustomersPath is the customer list route, the target of every customer write
const CustomersPath = "/customers"

// CustomerHandler handles customer routes
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List returns all customers, or those whose first or last name contains ?search=
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search query string false "Substring of the first or last name"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var query dto.SearchRequest
	_ = c.ShouldBindQuery(&query)

	customers, err := h.customerService.List(c.Request.Context(), query.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewListView(dto.EntityCustomer, customers))
}

// AddForm describes the fields of a new customer
//
// @Summary      Describe the customer add form
// @Tags         customers
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Router       /customer/add [get]
func (h *CustomerHandler) AddForm(c *gin.Context) {
	h.Success(c, dto.NewFormView(dto.EntityCustomer, nil))
}

// Create adds a customer and redirects to the list
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form formData CustomerForm true "Customer fields"
// @Success      302 "Redirect to /customers"
// @Header       302 {string} Location "/customers"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customer/add [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var form CustomerForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.customerService.Create(c.Request.Context(), cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, CustomersPath)
}

// EditForm returns a customer with its form fields
//
// @Summary      Get a customer with its edit form
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customer/edit/{id} [get]
func (h *CustomerHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Customer %s not found", c.Param("id")))
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewFormView(dto.EntityCustomer, customer))
}

// Update overwrites a customer and redirects to the list.
// A blank password keeps the stored one.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        form formData CustomerForm true "Customer fields"
// @Success      302 "Redirect to /customers"
// @Header       302 {string} Location "/customers"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customer/edit/{id} [post]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Customer %s not found", c.Param("id")))
		return
	}

	var form CustomerForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.customerService.Update(c.Request.Context(), id, cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, CustomersPath)
}

// Delete removes a customer and redirects to the list
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      302 "Redirect to /customers"
// @Header       302 {string} Location "/customers"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customer/delete/{id} [post]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Customer %s not found", c.Param("id")))
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, CustomersPath)
}
