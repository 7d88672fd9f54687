package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	partnerapp "github.com/pieshop/admin/internal/application/partner"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Forms bind the raw submitted strings. Presence and length are checked by
// binding rules; conversion to typed commands happens in command().

// ProductForm is the submitted product form
type ProductForm struct {
	Name        string `form:"name" binding:"required,notblank,max=255"`
	Category    string `form:"category" binding:"required,notblank,max=255"`
	Description string `form:"description" binding:"required,notblank"`
	Price       string `form:"price" binding:"required"`
	Stock       string `form:"stock" binding:"required"`
}

func (f ProductForm) command() (catalogapp.ProductCommand, error) {
	var cv coercer
	cmd := catalogapp.ProductCommand{
		Name:        f.Name,
		Category:    f.Category,
		Description: f.Description,
		Price:       cv.money("price", f.Price),
		Stock:       cv.integer("stock", f.Stock),
	}
	return cmd, cv.err()
}

// CustomerForm is the submitted customer form. Password is optional at
// binding time because a blank password on edit keeps the stored one.
type CustomerForm struct {
	FirstName        string `form:"first_name" binding:"required,notblank,max=255"`
	LastName         string `form:"last_name" binding:"required,notblank,max=255"`
	Email            string `form:"email" binding:"required,notblank,max=255"`
	Password         string `form:"password" binding:"omitempty,max=255"`
	Phone            string `form:"phone" binding:"required,notblank,max=20"`
	RegistrationDate string `form:"registration_date"`
}

func (f CustomerForm) command() (partnerapp.CustomerCommand, error) {
	var cv coercer
	cmd := partnerapp.CustomerCommand{
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Email:            f.Email,
		Password:         f.Password,
		Phone:            f.Phone,
		RegistrationDate: cv.date("registration_date", f.RegistrationDate),
	}
	return cmd, cv.err()
}

// OrderForm is the submitted order form
type OrderForm struct {
	CustomerID string `form:"customer_id" binding:"required"`
	OrderDate  string `form:"order_date"`
	TotalPrice string `form:"total_price" binding:"required"`
}

func (f OrderForm) command() (tradeapp.OrderCommand, error) {
	var cv coercer
	cmd := tradeapp.OrderCommand{
		CustomerID: cv.id("customer_id", f.CustomerID),
		OrderDate:  cv.date("order_date", f.OrderDate),
		TotalPrice: cv.money("total_price", f.TotalPrice),
	}
	return cmd, cv.err()
}

// LineItemForm is the submitted order line item add form
type LineItemForm struct {
	OrderID   string `form:"order_id" binding:"required"`
	ProductID string `form:"product_id" binding:"required"`
	Quantity  string `form:"quantity" binding:"required"`
}

func (f LineItemForm) command() (tradeapp.LineItemCommand, error) {
	var cv coercer
	cmd := tradeapp.LineItemCommand{
		OrderID:   cv.id("order_id", f.OrderID),
		ProductID: cv.id("product_id", f.ProductID),
		Quantity:  cv.integer("quantity", f.Quantity),
	}
	return cmd, cv.err()
}

// LineItemEditForm is the submitted line item edit form. The key comes from the path.
type LineItemEditForm struct {
	Quantity string `form:"quantity" binding:"required"`
}

func (f LineItemEditForm) quantity() (int, error) {
	var cv coercer
	q := cv.integer("quantity", f.Quantity)
	return q, cv.err()
}

// ReviewForm is the submitted review add form
type ReviewForm struct {
	ProductID  string `form:"product_id" binding:"required"`
	CustomerID string `form:"customer_id" binding:"required"`
	Review     string `form:"review" binding:"required,notblank"`
}

func (f ReviewForm) command() (catalogapp.ReviewCommand, error) {
	var cv coercer
	cmd := catalogapp.ReviewCommand{
		ProductID:  cv.id("product_id", f.ProductID),
		CustomerID: cv.id("customer_id", f.CustomerID),
		Text:       f.Review,
	}
	return cmd, cv.err()
}

// ReviewEditForm is the submitted review edit form. The key comes from the path.
type ReviewEditForm struct {
	Review string `form:"review" binding:"required,notblank"`
}

// coercer converts form strings to typed values and collects every field
// that fails, so one response can report all of them.
type coercer struct {
	details []shared.FieldError
}

func (cv *coercer) fail(field, message string) {
	cv.details = append(cv.details, shared.FieldError{Field: field, Message: message})
}

func (cv *coercer) id(field, raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		cv.fail(field, "must be an integer")
		return 0
	}
	return v
}

// integer parses counts stored in 32-bit columns (stock, quantity)
func (cv *coercer) integer(field, raw string) int {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		cv.fail(field, "must be an integer")
		return 0
	}
	return int(v)
}

func (cv *coercer) money(field, raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		cv.fail(field, "must be a decimal number")
		return decimal.Zero
	}
	if err := shared.ValidateMoney(field, v); err != nil {
		cv.fail(field, fieldMessage(err))
		return decimal.Zero
	}
	return v
}

// date parses YYYY-MM-DD; blank means today
func (cv *coercer) date(field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return shared.Today()
	}
	v, err := time.ParseInLocation(shared.DateLayout, raw, time.UTC)
	if err != nil {
		cv.fail(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return v
}

func (cv *coercer) err() error {
	switch len(cv.details) {
	case 0:
		return nil
	case 1:
		return shared.NewCoercionError(cv.details[0].Field, cv.details[0].Message)
	}
	fields := make([]string, len(cv.details))
	for i, d := range cv.details {
		fields[i] = d.Field
	}
	return &shared.DomainError{
		Code:    shared.CodeCoercion,
		Message: fmt.Sprintf("Invalid values for %s", strings.Join(fields, ", ")),
		Details: cv.details,
	}
}

func fieldMessage(err error) string {
	if de, ok := err.(*shared.DomainError); ok && len(de.Details) > 0 {
		return de.Details[0].Message
	}
	return err.Error()
}
