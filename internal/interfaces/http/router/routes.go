package router

import (
	"github.com/pieshop/admin/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler of the admin console
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	LineItem *handler.OrderLineItemHandler
	Review   *handler.ReviewHandler
	System   *handler.SystemHandler
}

// ProductRoutes maps the product list and its add, edit and delete routes
func ProductRoutes(h *handler.ProductHandler) *DomainGroup {
	return NewDomainGroup("product", "").
		GET(handler.ProductsPath, h.List).
		Form("/product/add", h.AddForm, h.Create).
		Form("/product/edit/:id", h.EditForm, h.Update).
		POST("/product/delete/:id", h.Delete)
}

func CustomerRoutes(h *handler.CustomerHandler) *DomainGroup {
	return NewDomainGroup("customer", "").
		GET(handler.CustomersPath, h.List).
		Form("/customer/add", h.AddForm, h.Create).
		Form("/customer/edit/:id", h.EditForm, h.Update).
		POST("/customer/delete/:id", h.Delete)
}

func OrderRoutes(h *handler.OrderHandler) *DomainGroup {
	return NewDomainGroup("order", "").
		GET(handler.OrdersPath, h.List).
		Form("/order/add", h.AddForm, h.Create).
		Form("/order/edit/:id", h.EditForm, h.Update).
		POST("/order/delete/:id", h.Delete)
}

// LineItemRoutes keys edit and delete by order and product ID
func LineItemRoutes(h *handler.OrderLineItemHandler) *DomainGroup {
	return NewDomainGroup("order_item", "").
		GET(handler.OrderItemsPath, h.List).
		Form("/order_item/add", h.AddForm, h.Create).
		Form("/order_item/edit/:order_id/:product_id", h.EditForm, h.Update).
		POST("/order_item/delete/:order_id/:product_id", h.Delete)
}

// ReviewRoutes keys edit and delete by product and customer ID
func ReviewRoutes(h *handler.ReviewHandler) *DomainGroup {
	return NewDomainGroup("review", "").
		GET(handler.ReviewsPath, h.List).
		Form("/review/add", h.AddForm, h.Create).
		Form("/review/edit/:product_id/:customer_id", h.EditForm, h.Update).
		POST("/review/delete/:product_id/:customer_id", h.Delete)
}

func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "").
		GET("/", h.Root).
		GET("/health", h.Health)
}

// DomainGroups returns one group per entity plus the system routes
func (h Handlers) DomainGroups() []*DomainGroup {
	return []*DomainGroup{
		SystemRoutes(h.System),
		ProductRoutes(h.Product),
		CustomerRoutes(h.Customer),
		OrderRoutes(h.Order),
		LineItemRoutes(h.LineItem),
		ReviewRoutes(h.Review),
	}
}
