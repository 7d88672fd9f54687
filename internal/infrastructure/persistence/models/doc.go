// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - catalog.go: products and reviews
// - partner.go: customers
// - trade.go: orders and order line items
// - registry.go: the full model set in foreign-key dependency order
package models
