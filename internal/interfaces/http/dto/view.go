package dto

// Entity names as shown to the presentation layer
const (
	EntityProduct       = "Product"
	EntityCustomer      = "Customer"
	EntityOrder         = "Order"
	EntityOrderLineItem = "Order_Product"
	EntityReview        = "Review"
)

// Input types for form fields
const (
	InputText     = "text"
	InputTextArea = "textarea"
	InputNumber   = "number"
	InputDecimal  = "decimal"
	InputDate     = "date"
	InputEmail    = "email"
	InputPassword = "password"
)

// FieldSpec describes one form field of an entity
type FieldSpec struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Editable bool   `json:"editable"` // false for key fields once the row exists
}

// EntityView is the payload of every list, add-form and edit-form route.
// Exactly one of Record or Records is set on list and edit responses; an
// add form carries neither.
type EntityView struct {
	Entity  string      `json:"entity"`
	Record  any         `json:"record,omitempty"`
	Records any         `json:"records,omitempty"`
	Fields  []FieldSpec `json:"fields"`
}

var entityFields = map[string][]FieldSpec{
	EntityProduct: {
		{Name: "name", Label: "Name", Type: InputText, Required: true, Editable: true},
		{Name: "category", Label: "Category", Type: InputText, Required: true, Editable: true},
		{Name: "description", Label: "Description", Type: InputTextArea, Required: true, Editable: true},
		{Name: "price", Label: "Price", Type: InputDecimal, Required: true, Editable: true},
		{Name: "stock", Label: "Stock", Type: InputNumber, Required: true, Editable: true},
	},
	EntityCustomer: {
		{Name: "first_name", Label: "First Name", Type: InputText, Required: true, Editable: true},
		{Name: "last_name", Label: "Last Name", Type: InputText, Required: true, Editable: true},
		{Name: "email", Label: "Email", Type: InputEmail, Required: true, Editable: true},
		// the service requires it on add; blank on edit keeps the stored password
		{Name: "password", Label: "Password", Type: InputPassword, Editable: true},
		{Name: "phone", Label: "Phone", Type: InputText, Required: true, Editable: true},
		{Name: "registration_date", Label: "Registration Date", Type: InputDate, Editable: true},
	},
	EntityOrder: {
		{Name: "customer_id", Label: "Customer ID", Type: InputNumber, Required: true, Editable: true},
		{Name: "order_date", Label: "Order Date", Type: InputDate, Editable: true},
		{Name: "total_price", Label: "Total Price", Type: InputDecimal, Required: true, Editable: true},
	},
	EntityOrderLineItem: {
		{Name: "order_id", Label: "Order ID", Type: InputNumber, Required: true},
		{Name: "product_id", Label: "Product ID", Type: InputNumber, Required: true},
		{Name: "quantity", Label: "Quantity", Type: InputNumber, Required: true, Editable: true},
	},
	EntityReview: {
		{Name: "product_id", Label: "Product ID", Type: InputNumber, Required: true},
		{Name: "customer_id", Label: "Customer ID", Type: InputNumber, Required: true},
		{Name: "review", Label: "Review", Type: InputTextArea, Required: true, Editable: true},
	},
}

// FieldsOf returns the form fields of entity
func FieldsOf(entity string) []FieldSpec {
	return entityFields[entity]
}

// NewListView creates the view of a list route
func NewListView(entity string, records any) EntityView {
	return EntityView{Entity: entity, Records: records, Fields: FieldsOf(entity)}
}

// NewFormView creates the view of an add form (record nil) or edit form
func NewFormView(entity string, record any) EntityView {
	return EntityView{Entity: entity, Record: record, Fields: FieldsOf(entity)}
}
