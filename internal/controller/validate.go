package controller

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/shopspring/decimal"
)

func field(data request.Data, name string) string {
	s, _ := data[name].(string)
	return strings.TrimSpace(s)
}

// ValidateTransaction checks a transaction creation form.
func ValidateTransaction(data request.Data) error {
	if !model.TransactionType(field(data, "type")).IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidForm, field(data, "type"))
	}
	if field(data, "name") == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidForm)
	}
	if field(data, "account_id") == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidForm)
	}

	sum, err := decimal.NewFromString(field(data, "sum"))
	if err != nil {
		return fmt.Errorf("%w: sum must be a number", ErrInvalidForm)
	}
	if !sum.IsPositive() {
		return fmt.Errorf("%w: sum must be positive", ErrInvalidForm)
	}
	return nil
}

// ValidateAccount checks an account creation form.
func ValidateAccount(data request.Data) error {
	if field(data, "name") == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidForm)
	}
	return nil
}
