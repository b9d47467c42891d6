// Package constraint gates every mutating operation on districts, distributor
// types and distributors. Each check is a stateless predicate over what the
// Reader returns plus the candidate values; nothing is written here. Callers
// run a check and the write it guards inside one store transaction.
package constraint

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
	"distributors/pkg/platform/sentinel"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_reader.go -package=mocks Reader

// Reader is the read surface the engine needs from the entity store.
type Reader interface {
	FindDistributorType(ctx context.Context, id int64) (*models.DistributorType, error)
	FindRegulationByName(ctx context.Context, name string) (*models.Regulation, error)
	CountDistributorsByDistrict(ctx context.Context, districtID int64) (int, error)
	CountDistributorsByType(ctx context.Context, typeID int64) (int, error)
	// HasDistributorOfTypeWithDebtAbove reports whether any distributor of
	// the type carries debt strictly greater than ceiling.
	HasDistributorOfTypeWithDebtAbove(ctx context.Context, typeID int64, ceiling decimal.Decimal) (bool, error)
}

// Engine evaluates the write rules against a Reader. Bind it to the
// transaction-scoped reader of the write it guards.
type Engine struct {
	reader Reader
}

// New constructs an Engine over r.
func New(r Reader) *Engine {
	return &Engine{reader: r}
}

// ValidateDistributorWrite checks a distributor about to be created
// (isNew) or updated.
//
// Rule order (fail-fast):
//  1. Debt ceiling of the candidate's type, on every write
//  2. District quota from the MaxDistributorsPerDistrict regulation, on
//     creation only. A missing or non-integer regulation enforces nothing.
//
// The quota is never re-checked on update, so tightening it later does not
// evict existing distributors.
func (e *Engine) ValidateDistributorWrite(ctx context.Context, candidate *models.Distributor, isNew bool) error {
	typ, err := e.reader.FindDistributorType(ctx, candidate.DistributorTypeID)
	if err != nil {
		return fmt.Errorf("load distributor type %d: %w", candidate.DistributorTypeID, err)
	}
	if !typ.Allows(candidate.Debt) {
		return &Violation{Kind: KindDebtExceedsLimit, Limit: typ.MaxDebt}
	}

	if !isNew {
		return nil
	}

	quota, ok, err := e.districtQuota(ctx)
	if err != nil || !ok {
		return err
	}
	count, err := e.reader.CountDistributorsByDistrict(ctx, candidate.DistrictID)
	if err != nil {
		return fmt.Errorf("count distributors in district %d: %w", candidate.DistrictID, err)
	}
	if count >= quota {
		return &Violation{Kind: KindDistrictQuotaExceeded, Quota: quota}
	}
	return nil
}

// ValidateTypeDebtCeilingLowered checks that moving typ's ceiling to
// newMaxDebt strands no existing debt. A distributor exactly at the new
// ceiling is allowed. Raising or keeping the ceiling always passes.
func (e *Engine) ValidateTypeDebtCeilingLowered(ctx context.Context, typ *models.DistributorType, newMaxDebt decimal.Decimal) error {
	if !newMaxDebt.LessThan(typ.MaxDebt) {
		return nil
	}
	above, err := e.reader.HasDistributorOfTypeWithDebtAbove(ctx, typ.ID, newMaxDebt)
	if err != nil {
		return fmt.Errorf("check debts of distributor type %d: %w", typ.ID, err)
	}
	if above {
		return &Violation{Kind: KindTypeCeilingViolatesExistingDebt, Limit: newMaxDebt}
	}
	return nil
}

// ValidateDistrictDeletable fails while any distributor references district.
func (e *Engine) ValidateDistrictDeletable(ctx context.Context, district *models.District) error {
	count, err := e.reader.CountDistributorsByDistrict(ctx, district.ID)
	if err != nil {
		return fmt.Errorf("count distributors in district %d: %w", district.ID, err)
	}
	if count > 0 {
		return &Violation{Kind: KindHasDependents, Entity: EntityDistrict, Dependents: count}
	}
	return nil
}

// ValidateTypeDeletable fails while any distributor references typ.
func (e *Engine) ValidateTypeDeletable(ctx context.Context, typ *models.DistributorType) error {
	count, err := e.reader.CountDistributorsByType(ctx, typ.ID)
	if err != nil {
		return fmt.Errorf("count distributors of type %d: %w", typ.ID, err)
	}
	if count > 0 {
		return &Violation{Kind: KindHasDependents, Entity: EntityDistributorType, Dependents: count}
	}
	return nil
}

// ValidateDistributorDeletable fails while the distributor owes money.
func (e *Engine) ValidateDistributorDeletable(_ context.Context, distributor *models.Distributor) error {
	if distributor.HasOutstandingDebt() {
		return &Violation{Kind: KindHasOutstandingDebt}
	}
	return nil
}

func (e *Engine) districtQuota(ctx context.Context) (int, bool, error) {
	reg, err := e.reader.FindRegulationByName(ctx, models.RegulationMaxDistributorsPerDistrict)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("load regulation %s: %w", models.RegulationMaxDistributorsPerDistrict, err)
	}
	quota, ok := reg.IntValue()
	return quota, ok, nil
}
