package models

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Field limits for a distributor record.
const (
	MaxDistributorNameLength = 100
	MaxAddressLength         = 200
)

var phonePattern = regexp.MustCompile(`^\d{10,11}$`)

// ValidPhone reports whether phone is 10 or 11 ASCII digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Distributor is the managed business entity.
//
// Invariants:
//   - Debt is non-negative and never above its type's MaxDebt
//   - IntakeDate is set once at creation and never changes
//   - Debt must be zero before the record can be deleted
//
// Email is optional; the empty string means absent.
type Distributor struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	DistrictID        int64           `json:"district_id"`
	DistributorTypeID int64           `json:"distributor_type_id"`
	IntakeDate        Date            `json:"intake_date"`
	Email             string          `json:"email,omitempty"`
	Debt              decimal.Decimal `json:"debt"`
}

// HasOutstandingDebt reports whether the distributor still owes anything.
func (d *Distributor) HasOutstandingDebt() bool {
	return d.Debt.IsPositive()
}

// DistributorView is a distributor joined with the names of its district and
// type, as returned by list and detail reads.
type DistributorView struct {
	Distributor
	DistrictName        string `json:"district_name"`
	DistributorTypeName string `json:"distributor_type_name"`
}
