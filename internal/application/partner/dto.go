package partner

import (
	"time"

	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
)

// CustomerCommand carries the typed fields of a customer add or edit.
// A blank Password on edit keeps the stored one.
type CustomerCommand struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	Phone            string
	RegistrationDate time.Time
}

func (c CustomerCommand) profile() partner.CustomerProfile {
	return partner.CustomerProfile{
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate,
	}
}

// CustomerResponse represents a customer in API responses.
// The stored password never leaves the service: edit forms submit a new one or leave it blank.
type CustomerResponse struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Password         string `json:"-"`
	Phone            string `json:"phone"`
	RegistrationDate string `json:"registration_date"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Password:         c.Password,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate.Format(shared.DateLayout),
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
