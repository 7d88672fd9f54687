package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
)

// ProductsPath is the product list route, the target of every product write
const ProductsPath = "/products"

// ProductHandler handles product routes
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns all products, or those whose name contains ?search=
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search query string false "Substring of the name"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.SearchRequest
	_ = c.ShouldBindQuery(&query)

	products, err := h.productService.List(c.Request.Context(), query.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewListView(dto.EntityProduct, products))
}

// AddForm describes the fields of a new product
//
// @Summary      Describe the product add form
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Router       /product/add [get]
func (h *ProductHandler) AddForm(c *gin.Context) {
	h.Success(c, dto.NewFormView(dto.EntityProduct, nil))
}

// Create adds a product and redirects to the list
//
// @Summary      Create a product
// @Tags         products
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form formData ProductForm true "Product fields"
// @Success      302 "Redirect to /products"
// @Header       302 {string} Location "/products"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /product/add [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.productService.Create(c.Request.Context(), cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ProductsPath)
}

// EditForm returns a product with its form fields
//
// @Summary      Get a product with its edit form
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=dto.EntityView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /product/edit/{id} [get]
func (h *ProductHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Product %s not found", c.Param("id")))
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewFormView(dto.EntityProduct, product))
}

// Update overwrites a product and redirects to the list
//
// @Summary      Update a product
// @Tags         products
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        form formData ProductForm true "Product fields"
// @Success      302 "Redirect to /products"
// @Header       302 {string} Location "/products"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /product/edit/{id} [post]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Product %s not found", c.Param("id")))
		return
	}

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	cmd, err := form.command()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.productService.Update(c.Request.Context(), id, cmd); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ProductsPath)
}

// Delete removes a product and redirects to the list
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      302 "Redirect to /products"
// @Header       302 {string} Location "/products"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /product/delete/{id} [post]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.NotFound(c, fmt.Sprintf("Product %s not found", c.Param("id")))
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.RedirectTo(c, ProductsPath)
}
