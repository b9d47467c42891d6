package constraint

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names a business rule a write would break.
type Kind string

const (
	KindDebtExceedsLimit                Kind = "debt_exceeds_limit"
	KindDistrictQuotaExceeded           Kind = "district_quota_exceeded"
	KindTypeCeilingViolatesExistingDebt Kind = "type_ceiling_violates_existing_debt"
	KindHasDependents                   Kind = "has_dependents"
	KindHasOutstandingDebt              Kind = "has_outstanding_debt"
)

// Entities a HasDependents violation can be raised for.
const (
	EntityDistrict        = "district"
	EntityDistributorType = "distributor_type"
)

// Violation is returned when a write would break a business rule. Only the
// fields relevant to Kind are set.
type Violation struct {
	Kind Kind
	// Limit is the type's debt ceiling for KindDebtExceedsLimit and the
	// proposed ceiling for KindTypeCeilingViolatesExistingDebt.
	Limit decimal.Decimal
	// Quota is the district capacity for KindDistrictQuotaExceeded.
	Quota int
	// Entity and Dependents describe a KindHasDependents violation.
	Entity     string
	Dependents int
}

func (v *Violation) Error() string {
	switch v.Kind {
	case KindDebtExceedsLimit:
		return fmt.Sprintf("debt exceeds the maximum allowed for this distributor type (%s)", v.Limit.String())
	case KindDistrictQuotaExceeded:
		return fmt.Sprintf("district has reached the maximum number of distributors (%d)", v.Quota)
	case KindTypeCeilingViolatesExistingDebt:
		return fmt.Sprintf("some distributors of this type carry debt above the new maximum (%s)", v.Limit.String())
	case KindHasDependents:
		if v.Entity == EntityDistributorType {
			return "cannot delete a distributor type that is in use"
		}
		return "cannot delete a district that has distributors"
	case KindHasOutstandingDebt:
		return "cannot delete a distributor with outstanding debt"
	default:
		return string(v.Kind)
	}
}

// AsViolation returns the Violation in err's chain, if any.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsKind reports whether err carries a Violation of the given kind.
func IsKind(err error, kind Kind) bool {
	v, ok := AsViolation(err)
	return ok && v.Kind == kind
}
