package service

import (
	"context"
	"strings"

	"distributors/internal/agency/constraint"
	"distributors/internal/agency/models"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/audit"
)

func (s *Service) ListDistricts(ctx context.Context) ([]models.DistrictSummary, error) {
	list, err := s.store.ListDistricts(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list districts")
	}
	return list, nil
}

// GetDistrict returns a district with its distributor count.
func (s *Service) GetDistrict(ctx context.Context, id int64) (*models.DistrictSummary, error) {
	d, err := s.store.FindDistrict(ctx, id)
	if err != nil {
		return nil, s.translate(err, "district", "failed to load district")
	}
	count, err := s.store.CountDistributorsByDistrict(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count distributors")
	}
	return &models.DistrictSummary{District: *d, DistributorCount: count}, nil
}

func (s *Service) CreateDistrict(ctx context.Context, name string) (*models.District, error) {
	d := &models.District{Name: strings.TrimSpace(name)}
	if err := validateName("name", d.Name, models.MaxDistrictNameLength); err != nil {
		return nil, err
	}
	err := s.write(ctx, constraint.EntityDistrict, func(ctx context.Context) error {
		return s.store.CreateDistrict(ctx, d)
	})
	if err != nil {
		return nil, s.translate(err, "district", "failed to create district")
	}
	s.logAudit(ctx, audit.EventDistrictCreated, "entity", constraint.EntityDistrict, "entity_id", d.ID)
	return d, nil
}

func (s *Service) UpdateDistrict(ctx context.Context, id int64, name string) (*models.District, error) {
	d := &models.District{ID: id, Name: strings.TrimSpace(name)}
	if err := validateName("name", d.Name, models.MaxDistrictNameLength); err != nil {
		return nil, err
	}
	err := s.write(ctx, constraint.EntityDistrict, func(ctx context.Context) error {
		return s.store.UpdateDistrict(ctx, d)
	})
	if err != nil {
		return nil, s.translate(err, "district", "failed to update district")
	}
	s.logAudit(ctx, audit.EventDistrictUpdated, "entity", constraint.EntityDistrict, "entity_id", d.ID)
	return d, nil
}

// DeleteDistrict removes a district that no distributor references.
func (s *Service) DeleteDistrict(ctx context.Context, id int64) error {
	err := s.write(ctx, constraint.EntityDistrict, func(ctx context.Context) error {
		d, err := s.store.FindDistrict(ctx, id)
		if err != nil {
			return err
		}
		if err := s.engine.ValidateDistrictDeletable(ctx, d); err != nil {
			return err
		}
		return s.store.DeleteDistrict(ctx, id)
	})
	if err != nil {
		return s.translate(err, "district", "failed to delete district")
	}
	s.logAudit(ctx, audit.EventDistrictDeleted, "entity", constraint.EntityDistrict, "entity_id", id)
	return nil
}

// ListDistrictDistributors returns the distributors located in a district.
func (s *Service) ListDistrictDistributors(ctx context.Context, id int64) ([]models.DistributorView, error) {
	if _, err := s.store.FindDistrict(ctx, id); err != nil {
		return nil, s.translate(err, "district", "failed to load district")
	}
	list, err := s.store.ListDistributorsByDistrict(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list distributors")
	}
	return list, nil
}
