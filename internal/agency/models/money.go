package models

import (
	"github.com/shopspring/decimal"

	dErrors "distributors/pkg/domain-errors"
)

// MaxMoneyDigits is the widest amount a debt column holds.
const MaxMoneyDigits = 18

var moneyBound = decimal.New(1, MaxMoneyDigits)

// ValidateMoney checks that v is a non-negative whole amount of at most
// MaxMoneyDigits digits. field names the offending request field.
func ValidateMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return dErrors.Newf(dErrors.CodeValidation, "%s must not be negative", field)
	}
	if !v.Equal(v.Truncate(0)) {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be a whole number", field)
	}
	if v.GreaterThanOrEqual(moneyBound) {
		return dErrors.Newf(dErrors.CodeValidation, "%s must have at most %d digits", field, MaxMoneyDigits)
	}
	return nil
}
