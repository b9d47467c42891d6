package models

import "github.com/shopspring/decimal"

// MaxDistributorTypeNameLength bounds DistributorType.Name.
const MaxDistributorTypeNameLength = 50

// DistributorType classifies distributors and carries their debt ceiling.
//
// Invariants:
//   - MaxDebt is a non-negative whole amount
//   - every distributor of the type has Debt <= MaxDebt
//   - cannot be deleted while referenced
type DistributorType struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	MaxDebt decimal.Decimal `json:"max_debt"`
}

// Allows reports whether debt fits under the type's ceiling. The ceiling
// itself is allowed.
func (t *DistributorType) Allows(debt decimal.Decimal) bool {
	return debt.LessThanOrEqual(t.MaxDebt)
}

// DistributorTypeSummary is a type annotated with its distributor count.
type DistributorTypeSummary struct {
	DistributorType
	DistributorCount int `json:"distributor_count"`
}
