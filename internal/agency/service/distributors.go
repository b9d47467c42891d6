package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/email"
	"distributors/pkg/platform/audit"
	"distributors/pkg/platform/sentinel"
	"distributors/pkg/requestcontext"
)

const entityDistributor = "distributor"

// DistributorInput carries the client-writable distributor fields. The intake
// date is never client-writable.
type DistributorInput struct {
	Name              string
	Phone             string
	Address           string
	DistrictID        int64
	DistributorTypeID int64
	Email             string
	Debt              decimal.Decimal
}

func (in *DistributorInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.Email = email.Normalize(in.Email)
}

func (in *DistributorInput) validate() error {
	if err := validateName("name", in.Name, models.MaxDistributorNameLength); err != nil {
		return err
	}
	if !models.ValidPhone(in.Phone) {
		return dErrors.New(dErrors.CodeValidation, "phone must be 10 or 11 digits")
	}
	if err := validateName("address", in.Address, models.MaxAddressLength); err != nil {
		return err
	}
	if in.DistrictID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "district_id is required")
	}
	if in.DistributorTypeID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "distributor_type_id is required")
	}
	if in.Email != "" && !email.Valid(in.Email) {
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	return models.ValidateMoney("debt", in.Debt)
}

func (in *DistributorInput) applyTo(d *models.Distributor) {
	d.Name = in.Name
	d.Phone = in.Phone
	d.Address = in.Address
	d.DistrictID = in.DistrictID
	d.DistributorTypeID = in.DistributorTypeID
	d.Email = in.Email
	d.Debt = in.Debt
}

func (s *Service) ListDistributors(ctx context.Context) ([]models.DistributorView, error) {
	list, err := s.store.ListDistributors(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list distributors")
	}
	return list, nil
}

func (s *Service) GetDistributor(ctx context.Context, id int64) (*models.DistributorView, error) {
	v, err := s.store.FindDistributor(ctx, id)
	if err != nil {
		return nil, s.translate(err, "distributor", "failed to load distributor")
	}
	return v, nil
}

// SearchDistributors finds distributors whose name, phone, address or email
// contains keyword, ignoring case. The keyword is matched as given; only an
// empty keyword short-circuits to an empty list.
func (s *Service) SearchDistributors(ctx context.Context, keyword string) ([]models.DistributorView, error) {
	if keyword == "" {
		return []models.DistributorView{}, nil
	}
	list, err := s.store.SearchDistributors(ctx, keyword)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search distributors")
	}
	return list, nil
}

// CreateDistributor registers a distributor dated to the request day. The
// debt must fit its type's ceiling and the district must have room under the
// MaxDistributorsPerDistrict regulation when that regulation is set.
func (s *Service) CreateDistributor(ctx context.Context, in DistributorInput) (*models.DistributorView, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &models.Distributor{IntakeDate: models.NewDate(requestcontext.Now(ctx))}
	in.applyTo(d)

	var view *models.DistributorView
	err := s.write(ctx, entityDistributor, func(ctx context.Context) error {
		if err := s.requireReferences(ctx, d); err != nil {
			return err
		}
		if err := s.engine.ValidateDistributorWrite(ctx, d, true); err != nil {
			return err
		}
		if err := s.store.CreateDistributor(ctx, d); err != nil {
			return err
		}
		var err error
		view, err = s.store.FindDistributor(ctx, d.ID)
		return err
	})
	if err != nil {
		return nil, s.translateDistributorWrite(err, "failed to create distributor")
	}
	s.logAudit(ctx, audit.EventDistributorCreated, "entity", entityDistributor, "entity_id", d.ID)
	return view, nil
}

// UpdateDistributor rewrites a distributor's fields, keeping its intake date.
// The debt ceiling is re-checked; the district quota is not.
func (s *Service) UpdateDistributor(ctx context.Context, id int64, in DistributorInput) (*models.DistributorView, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var view *models.DistributorView
	err := s.write(ctx, entityDistributor, func(ctx context.Context) error {
		current, err := s.store.FindDistributor(ctx, id)
		if err != nil {
			return err
		}
		d := current.Distributor
		in.applyTo(&d)
		if err := s.requireReferences(ctx, &d); err != nil {
			return err
		}
		if err := s.engine.ValidateDistributorWrite(ctx, &d, false); err != nil {
			return err
		}
		if err := s.store.UpdateDistributor(ctx, &d); err != nil {
			return err
		}
		view, err = s.store.FindDistributor(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.translateDistributorWrite(err, "failed to update distributor")
	}
	s.logAudit(ctx, audit.EventDistributorUpdated, "entity", entityDistributor, "entity_id", id)
	return view, nil
}

// DeleteDistributor removes a distributor that owes nothing.
func (s *Service) DeleteDistributor(ctx context.Context, id int64) error {
	err := s.write(ctx, entityDistributor, func(ctx context.Context) error {
		current, err := s.store.FindDistributor(ctx, id)
		if err != nil {
			return err
		}
		if err := s.engine.ValidateDistributorDeletable(ctx, &current.Distributor); err != nil {
			return err
		}
		return s.store.DeleteDistributor(ctx, id)
	})
	if err != nil {
		return s.translate(err, "distributor", "failed to delete distributor")
	}
	s.logAudit(ctx, audit.EventDistributorDeleted, "entity", entityDistributor, "entity_id", id)
	return nil
}

// requireReferences reports a validation error when the candidate points at a
// district or type that does not exist.
func (s *Service) requireReferences(ctx context.Context, d *models.Distributor) error {
	if _, err := s.store.FindDistrict(ctx, d.DistrictID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeValidation, "district %d does not exist", d.DistrictID)
		}
		return err
	}
	if _, err := s.store.FindDistributorType(ctx, d.DistributorTypeID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeValidation, "distributor type %d does not exist", d.DistributorTypeID)
		}
		return err
	}
	return nil
}

// translateDistributorWrite treats a reference the store rejected as a
// validation failure rather than a dependency conflict.
func (s *Service) translateDistributorWrite(err error, fallback string) error {
	if errors.Is(err, sentinel.ErrInvalidState) && !dErrors.HasCode(err, dErrors.CodeConstraintViolation) {
		return dErrors.New(dErrors.CodeValidation, "district or distributor type does not exist")
	}
	return s.translate(err, "distributor", fallback)
}
