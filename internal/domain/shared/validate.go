package shared

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxMoney is the largest amount a NUMERIC(10,2) column can hold
var MaxMoney = decimal.RequireFromString("99999999.99")

// ValidateRequired checks that a text field is present and, when maxLen is
// positive, no longer than maxLen characters.
func ValidateRequired(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return NewInvalidInputError(field, "is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return NewInvalidInputError(field, fmt.Sprintf("cannot exceed %d characters", maxLen))
	}
	return nil
}

// ValidateMoney checks a monetary amount: non-negative, at most two
// fraction digits and within column range.
func ValidateMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewInvalidInputError(field, "cannot be negative")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return NewInvalidInputError(field, "cannot have more than 2 decimal places")
	}
	if amount.GreaterThan(MaxMoney) {
		return NewInvalidInputError(field, "exceeds maximum of "+MaxMoney.StringFixed(2))
	}
	return nil
}

// ValidateID checks that a referenced identifier is positive
func ValidateID(field string, id int64) error {
	if id <= 0 {
		return NewInvalidInputError(field, "must be a positive integer")
	}
	return nil
}
