package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/constraint"
	"distributors/internal/agency/models"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/audit"
)

func (s *Service) ListDistributorTypes(ctx context.Context) ([]models.DistributorTypeSummary, error) {
	list, err := s.store.ListDistributorTypes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list distributor types")
	}
	return list, nil
}

// GetDistributorType returns a type with its distributor count.
func (s *Service) GetDistributorType(ctx context.Context, id int64) (*models.DistributorTypeSummary, error) {
	t, err := s.store.FindDistributorType(ctx, id)
	if err != nil {
		return nil, s.translate(err, "distributor type", "failed to load distributor type")
	}
	count, err := s.store.CountDistributorsByType(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count distributors")
	}
	return &models.DistributorTypeSummary{DistributorType: *t, DistributorCount: count}, nil
}

func validateType(t *models.DistributorType) error {
	if err := validateName("name", t.Name, models.MaxDistributorTypeNameLength); err != nil {
		return err
	}
	return models.ValidateMoney("max_debt", t.MaxDebt)
}

func (s *Service) CreateDistributorType(ctx context.Context, name string, maxDebt decimal.Decimal) (*models.DistributorType, error) {
	t := &models.DistributorType{Name: strings.TrimSpace(name), MaxDebt: maxDebt}
	if err := validateType(t); err != nil {
		return nil, err
	}
	err := s.write(ctx, constraint.EntityDistributorType, func(ctx context.Context) error {
		return s.store.CreateDistributorType(ctx, t)
	})
	if err != nil {
		return nil, s.translate(err, "distributor type", "failed to create distributor type")
	}
	s.logAudit(ctx, audit.EventDistributorTypeCreated, "entity", constraint.EntityDistributorType, "entity_id", t.ID)
	return t, nil
}

// UpdateDistributorType renames a type and moves its debt ceiling. Lowering
// the ceiling fails while any distributor of the type owes more than the new
// value.
func (s *Service) UpdateDistributorType(ctx context.Context, id int64, name string, maxDebt decimal.Decimal) (*models.DistributorType, error) {
	updated := &models.DistributorType{ID: id, Name: strings.TrimSpace(name), MaxDebt: maxDebt}
	if err := validateType(updated); err != nil {
		return nil, err
	}
	err := s.write(ctx, constraint.EntityDistributorType, func(ctx context.Context) error {
		current, err := s.store.FindDistributorType(ctx, id)
		if err != nil {
			return err
		}
		if err := s.engine.ValidateTypeDebtCeilingLowered(ctx, current, maxDebt); err != nil {
			return err
		}
		return s.store.UpdateDistributorType(ctx, updated)
	})
	if err != nil {
		return nil, s.translate(err, "distributor type", "failed to update distributor type")
	}
	s.logAudit(ctx, audit.EventDistributorTypeUpdated, "entity", constraint.EntityDistributorType, "entity_id", id)
	return updated, nil
}

// DeleteDistributorType removes a type that no distributor references.
func (s *Service) DeleteDistributorType(ctx context.Context, id int64) error {
	err := s.write(ctx, constraint.EntityDistributorType, func(ctx context.Context) error {
		t, err := s.store.FindDistributorType(ctx, id)
		if err != nil {
			return err
		}
		if err := s.engine.ValidateTypeDeletable(ctx, t); err != nil {
			return err
		}
		return s.store.DeleteDistributorType(ctx, id)
	})
	if err != nil {
		return s.translate(err, "distributor type", "failed to delete distributor type")
	}
	s.logAudit(ctx, audit.EventDistributorTypeDeleted, "entity", constraint.EntityDistributorType, "entity_id", id)
	return nil
}

// ListTypeDistributors returns the distributors classified under a type.
func (s *Service) ListTypeDistributors(ctx context.Context, id int64) ([]models.DistributorView, error) {
	if _, err := s.store.FindDistributorType(ctx, id); err != nil {
		return nil, s.translate(err, "distributor type", "failed to load distributor type")
	}
	list, err := s.store.ListDistributorsByType(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list distributors")
	}
	return list, nil
}
