package service

import (
	"context"
	"errors"
	"strings"

	"distributors/internal/agency/models"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/audit"
	"distributors/pkg/platform/sentinel"
)

const entityRegulation = "regulation"

func normalizeRegulation(r *models.Regulation) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if err := validateName("name", r.Name, models.MaxRegulationNameLength); err != nil {
		return err
	}
	if len([]rune(r.Value)) > models.MaxRegulationValueLength {
		return dErrors.Newf(dErrors.CodeValidation, "value must be at most %d characters", models.MaxRegulationValueLength)
	}
	return nil
}

func (s *Service) ListRegulations(ctx context.Context) ([]models.Regulation, error) {
	list, err := s.store.ListRegulations(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list regulations")
	}
	return list, nil
}

func (s *Service) GetRegulation(ctx context.Context, id int64) (*models.Regulation, error) {
	r, err := s.store.FindRegulation(ctx, id)
	if err != nil {
		return nil, s.translate(err, "regulation", "failed to load regulation")
	}
	return r, nil
}

// GetRegulationByName looks a regulation up by its exact name.
func (s *Service) GetRegulationByName(ctx context.Context, name string) (*models.Regulation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	r, err := s.store.FindRegulationByName(ctx, name)
	if err != nil {
		return nil, s.translate(err, "regulation", "failed to load regulation")
	}
	return r, nil
}

func (s *Service) CreateRegulation(ctx context.Context, r models.Regulation) (*models.Regulation, error) {
	r.ID = 0
	if err := normalizeRegulation(&r); err != nil {
		return nil, err
	}
	err := s.write(ctx, entityRegulation, func(ctx context.Context) error {
		return s.store.CreateRegulation(ctx, &r)
	})
	if err != nil {
		return nil, s.translateRegulationWrite(err, "failed to create regulation")
	}
	s.logAudit(ctx, audit.EventRegulationCreated, "entity", entityRegulation, "entity_id", r.ID)
	return &r, nil
}

func (s *Service) UpdateRegulation(ctx context.Context, id int64, r models.Regulation) (*models.Regulation, error) {
	r.ID = id
	if err := normalizeRegulation(&r); err != nil {
		return nil, err
	}
	err := s.write(ctx, entityRegulation, func(ctx context.Context) error {
		return s.store.UpdateRegulation(ctx, &r)
	})
	if err != nil {
		return nil, s.translateRegulationWrite(err, "failed to update regulation")
	}
	s.logAudit(ctx, audit.EventRegulationUpdated, "entity", entityRegulation, "entity_id", id)
	return &r, nil
}

func (s *Service) DeleteRegulation(ctx context.Context, id int64) error {
	err := s.write(ctx, entityRegulation, func(ctx context.Context) error {
		return s.store.DeleteRegulation(ctx, id)
	})
	if err != nil {
		return s.translate(err, "regulation", "failed to delete regulation")
	}
	s.logAudit(ctx, audit.EventRegulationDeleted, "entity", entityRegulation, "entity_id", id)
	return nil
}

// EnsureRegulation returns the regulation named r.Name, creating it with r's
// value when absent. An existing regulation is never modified. created
// reports whether this call inserted the row.
func (s *Service) EnsureRegulation(ctx context.Context, r models.Regulation) (reg *models.Regulation, created bool, err error) {
	r.ID = 0
	if err := normalizeRegulation(&r); err != nil {
		return nil, false, err
	}
	err = s.write(ctx, entityRegulation, func(ctx context.Context) error {
		existing, err := s.store.FindRegulationByName(ctx, r.Name)
		if err == nil {
			reg = existing
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}
		if err := s.store.CreateRegulation(ctx, &r); err != nil {
			return err
		}
		reg, created = &r, true
		return nil
	})
	if err != nil {
		return nil, false, s.translateRegulationWrite(err, "failed to ensure regulation")
	}
	if created {
		s.logAudit(ctx, audit.EventRegulationCreated, "entity", entityRegulation, "entity_id", reg.ID)
	}
	return reg, created, nil
}

func (s *Service) translateRegulationWrite(err error, fallback string) error {
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.New(dErrors.CodeConflict, "regulation name must be unique")
	}
	return s.translate(err, "regulation", fallback)
}
