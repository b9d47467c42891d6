package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Districts lists all districts with their distributor counts.
func (c *Client) Districts(ctx context.Context) ([]District, error) {
	var out []District
	err := c.do(ctx, http.MethodGet, "/districts", nil, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) District(ctx context.Context, id int64) (*District, error) {
	var out District
	if err := c.do(ctx, http.MethodGet, idPath("districts", id), nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDistrict(ctx context.Context, name string) (*District, error) {
	var out District
	if err := c.do(ctx, http.MethodPost, "/districts", nil, map[string]string{"name": name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDistrict(ctx context.Context, id int64, name string) (*District, error) {
	var out District
	if err := c.do(ctx, http.MethodPut, idPath("districts", id), nil, map[string]string{"name": name}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDistrict(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("districts", id), nil, nil, nil, http.StatusNoContent)
}

// DistrictDistributors lists the distributors registered in a district.
func (c *Client) DistrictDistributors(ctx context.Context, id int64) ([]Distributor, error) {
	var out []Distributor
	err := c.do(ctx, http.MethodGet, idPath("districts", id)+"/distributors", nil, nil, &out, http.StatusOK)
	return out, err
}

// DistributorTypes lists all types with their distributor counts.
func (c *Client) DistributorTypes(ctx context.Context) ([]DistributorType, error) {
	var out []DistributorType
	err := c.do(ctx, http.MethodGet, "/distributor-types", nil, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) DistributorType(ctx context.Context, id int64) (*DistributorType, error) {
	var out DistributorType
	if err := c.do(ctx, http.MethodGet, idPath("distributor-types", id), nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

type typeBody struct {
	Name    string          `json:"name"`
	MaxDebt decimal.Decimal `json:"max_debt"`
}

func (c *Client) CreateDistributorType(ctx context.Context, name string, maxDebt decimal.Decimal) (*DistributorType, error) {
	var out DistributorType
	if err := c.do(ctx, http.MethodPost, "/distributor-types", nil, typeBody{name, maxDebt}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDistributorType(ctx context.Context, id int64, name string, maxDebt decimal.Decimal) (*DistributorType, error) {
	var out DistributorType
	if err := c.do(ctx, http.MethodPut, idPath("distributor-types", id), nil, typeBody{name, maxDebt}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDistributorType(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("distributor-types", id), nil, nil, nil, http.StatusNoContent)
}

// TypeDistributors lists the distributors of a type.
func (c *Client) TypeDistributors(ctx context.Context, id int64) ([]Distributor, error) {
	var out []Distributor
	err := c.do(ctx, http.MethodGet, idPath("distributor-types", id)+"/distributors", nil, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) Distributors(ctx context.Context) ([]Distributor, error) {
	var out []Distributor
	err := c.do(ctx, http.MethodGet, "/distributors", nil, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) Distributor(ctx context.Context, id int64) (*Distributor, error) {
	var out Distributor
	if err := c.do(ctx, http.MethodGet, idPath("distributors", id), nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search matches keyword against name, phone, address and email. The server
// answers an empty keyword with no results.
func (c *Client) Search(ctx context.Context, keyword string) ([]Distributor, error) {
	var out []Distributor
	err := c.do(ctx, http.MethodGet, "/distributors/search", url.Values{"keyword": {keyword}}, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) CreateDistributor(ctx context.Context, in DistributorInput) (*Distributor, error) {
	var out Distributor
	if err := c.do(ctx, http.MethodPost, "/distributors", nil, in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDistributor(ctx context.Context, id int64, in DistributorInput) (*Distributor, error) {
	var out Distributor
	if err := c.do(ctx, http.MethodPut, idPath("distributors", id), nil, in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDebt reads the distributor and writes it back with a new debt.
func (c *Client) UpdateDebt(ctx context.Context, id int64, debt decimal.Decimal) (*Distributor, error) {
	current, err := c.Distributor(ctx, id)
	if err != nil {
		return nil, err
	}
	in := current.Input()
	in.Debt = &debt
	return c.UpdateDistributor(ctx, id, in)
}

func (c *Client) DeleteDistributor(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("distributors", id), nil, nil, nil, http.StatusNoContent)
}

func (c *Client) Regulations(ctx context.Context) ([]Regulation, error) {
	var out []Regulation
	err := c.do(ctx, http.MethodGet, "/regulations", nil, nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) Regulation(ctx context.Context, id int64) (*Regulation, error) {
	var out Regulation
	if err := c.do(ctx, http.MethodGet, idPath("regulations", id), nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegulationByName returns the named regulation. A missing one is an
// *APIError with status 404; see IsNotFound.
func (c *Client) RegulationByName(ctx context.Context, name string) (*Regulation, error) {
	var out Regulation
	if err := c.do(ctx, http.MethodGet, "/regulations/by-name", url.Values{"name": {name}}, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRegulation(ctx context.Context, r Regulation) (*Regulation, error) {
	var out Regulation
	if err := c.do(ctx, http.MethodPost, "/regulations", nil, r, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnsureRegulation returns the regulation named r.Name, creating it from r
// when absent. created reports whether this call created it. An existing
// value is never overwritten.
func (c *Client) EnsureRegulation(ctx context.Context, r Regulation) (reg *Regulation, created bool, err error) {
	var out Regulation
	status, err := c.send(ctx, http.MethodPost, "/regulations/ensure", nil, r, &out, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, false, err
	}
	return &out, status == http.StatusCreated, nil
}

func (c *Client) UpdateRegulation(ctx context.Context, id int64, r Regulation) (*Regulation, error) {
	var out Regulation
	if err := c.do(ctx, http.MethodPut, idPath("regulations", id), nil, r, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetRegulationValue reads the regulation and writes it back with a new value,
// keeping its name and description.
func (c *Client) SetRegulationValue(ctx context.Context, id int64, value string) (*Regulation, error) {
	current, err := c.Regulation(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Value = value
	return c.UpdateRegulation(ctx, id, *current)
}

func (c *Client) DeleteRegulation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("regulations", id), nil, nil, nil, http.StatusNoContent)
}
