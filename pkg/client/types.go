package client

import "github.com/shopspring/decimal"

// District as returned by the API. DistributorCount is filled on list and
// detail reads.
type District struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	DistributorCount int    `json:"distributor_count,omitempty"`
}

// DistributorType as returned by the API.
type DistributorType struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	MaxDebt          decimal.Decimal `json:"max_debt"`
	DistributorCount int             `json:"distributor_count,omitempty"`
}

// Distributor as returned by the API. IntakeDate is YYYY-MM-DD.
type Distributor struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Address             string          `json:"address"`
	DistrictID          int64           `json:"district_id"`
	DistributorTypeID   int64           `json:"distributor_type_id"`
	IntakeDate          string          `json:"intake_date,omitempty"`
	Email               string          `json:"email,omitempty"`
	Debt                decimal.Decimal `json:"debt"`
	DistrictName        string          `json:"district_name,omitempty"`
	DistributorTypeName string          `json:"distributor_type_name,omitempty"`
}

// DistributorInput is the writable part of a distributor.
type DistributorInput struct {
	Name              string           `json:"name"`
	Phone             string           `json:"phone"`
	Address           string           `json:"address"`
	DistrictID        int64            `json:"district_id"`
	DistributorTypeID int64            `json:"distributor_type_id"`
	Email             string           `json:"email,omitempty"`
	Debt              *decimal.Decimal `json:"debt,omitempty"`
}

// Input returns the writable part of d.
func (d Distributor) Input() DistributorInput {
	debt := d.Debt
	return DistributorInput{
		Name:              d.Name,
		Phone:             d.Phone,
		Address:           d.Address,
		DistrictID:        d.DistrictID,
		DistributorTypeID: d.DistributorTypeID,
		Email:             d.Email,
		Debt:              &debt,
	}
}

// Regulation as returned by the API.
type Regulation struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type errorEnvelope struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
