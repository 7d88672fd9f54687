package models

// All returns every persistence model, parents before children.
func All() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&OrderModel{},
		&ReviewModel{},
		&OrderLineItemModel{},
	}
}
