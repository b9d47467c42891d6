package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
	"distributors/internal/agency/service"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/email"
)

// DistrictRequest is the body of POST and PUT /districts.
type DistrictRequest struct {
	Name string `json:"name"`
}

// Validate implements httputil.Validatable.
func (r *DistrictRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// DistributorTypeRequest is the body of POST and PUT /distributor-types.
type DistributorTypeRequest struct {
	Name    string           `json:"name"`
	MaxDebt *decimal.Decimal `json:"max_debt"`
}

// Validate implements httputil.Validatable.
func (r *DistributorTypeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.MaxDebt == nil {
		return dErrors.New(dErrors.CodeValidation, "max_debt is required")
	}
	return models.ValidateMoney("max_debt", *r.MaxDebt)
}

// DistributorRequest is the body of POST and PUT /distributors. The intake
// date is assigned by the server and ignored when sent.
type DistributorRequest struct {
	Name              string           `json:"name"`
	Phone             string           `json:"phone"`
	Address           string           `json:"address"`
	DistrictID        int64            `json:"district_id"`
	DistributorTypeID int64            `json:"distributor_type_id"`
	Email             string           `json:"email"`
	Debt              *decimal.Decimal `json:"debt"`
}

// Validate implements httputil.Validatable.
func (r *DistributorRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.Email = email.Normalize(r.Email)

	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Phone == "":
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	case !models.ValidPhone(r.Phone):
		return dErrors.New(dErrors.CodeValidation, "phone must be 10 or 11 digits")
	case r.Address == "":
		return dErrors.New(dErrors.CodeValidation, "address is required")
	case r.DistrictID <= 0:
		return dErrors.New(dErrors.CodeValidation, "district_id is required")
	case r.DistributorTypeID <= 0:
		return dErrors.New(dErrors.CodeValidation, "distributor_type_id is required")
	case r.Email != "" && !email.Valid(r.Email):
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	if r.Debt != nil {
		return models.ValidateMoney("debt", *r.Debt)
	}
	return nil
}

// Input converts the request into service input. A missing debt is zero.
func (r *DistributorRequest) Input() service.DistributorInput {
	debt := decimal.Zero
	if r.Debt != nil {
		debt = *r.Debt
	}
	return service.DistributorInput{
		Name:              r.Name,
		Phone:             r.Phone,
		Address:           r.Address,
		DistrictID:        r.DistrictID,
		DistributorTypeID: r.DistributorTypeID,
		Email:             r.Email,
		Debt:              debt,
	}
}

// RegulationRequest is the body of POST and PUT /regulations and POST
// /regulations/ensure.
type RegulationRequest struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Validate implements httputil.Validatable.
func (r *RegulationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// Regulation converts the request into a regulation record.
func (r *RegulationRequest) Regulation() models.Regulation {
	return models.Regulation{Name: r.Name, Value: r.Value, Description: r.Description}
}
