package partner

import (
	"time"

	"github.com/pieshop/admin/internal/domain/shared"
)

// Column limits
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxPasswordLength = 255
	MaxPhoneLength    = 20
)

// Customer represents a registered shop customer
type Customer struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	Password         string
	Phone            string
	RegistrationDate time.Time
}

// CustomerProfile holds the customer fields that are always overwritten on edit
type CustomerProfile struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	RegistrationDate time.Time
}

// NewCustomer creates a new customer. password is the value to store, which
// may already be hashed by the caller.
func NewCustomer(profile CustomerProfile, password string) (*Customer, error) {
	if err := shared.ValidateRequired("password", password, MaxPasswordLength); err != nil {
		return nil, err
	}
	c := &Customer{}
	if err := c.UpdateProfile(profile); err != nil {
		return nil, err
	}
	c.Password = password
	return c, nil
}

// UpdateProfile overwrites every field except the password
func (c *Customer) UpdateProfile(profile CustomerProfile) error {
	if err := shared.ValidateRequired("first_name", profile.FirstName, MaxNameLength); err != nil {
		return err
	}
	if err := shared.ValidateRequired("last_name", profile.LastName, MaxNameLength); err != nil {
		return err
	}
	if err := shared.ValidateRequired("email", profile.Email, MaxEmailLength); err != nil {
		return err
	}
	if err := shared.ValidateRequired("phone", profile.Phone, MaxPhoneLength); err != nil {
		return err
	}
	if profile.RegistrationDate.IsZero() {
		return shared.NewInvalidInputError("registration_date", "is required")
	}

	c.FirstName = profile.FirstName
	c.LastName = profile.LastName
	c.Email = profile.Email
	c.Phone = profile.Phone
	c.RegistrationDate = shared.DateOf(profile.RegistrationDate)
	return nil
}

// ChangePassword replaces the stored password. Callers skip this when the
// submitted password is blank.
func (c *Customer) ChangePassword(password string) error {
	if err := shared.ValidateRequired("password", password, MaxPasswordLength); err != nil {
		return err
	}
	c.Password = password
	return nil
}

// FullName returns "First Last"
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
