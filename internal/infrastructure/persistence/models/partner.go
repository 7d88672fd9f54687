package models

import (
	"time"

	"github.com/pieshop/admin/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer entity.
type CustomerModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	FirstName        string    `gorm:"type:varchar(255);not null"`
	LastName         string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_customers_email"`
	Password         string    `gorm:"type:varchar(255);not null"`
	Phone            string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_customers_phone"`
	RegistrationDate time.Time `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Password:         m.Password,
		Phone:            m.Phone,
		RegistrationDate: m.RegistrationDate.UTC(),
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	return &CustomerModel{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Password:         c.Password,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate,
	}
}
