package main

import (
	"strings"

	"distributors/internal/agency/models"
	"distributors/pkg/client"
	"distributors/pkg/email"
)

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return usageErrorf("%s is required", field)
	}
	return nil
}

// validateDistributor applies the server's field rules before sending, so a
// typo fails fast without a round trip.
func validateDistributor(in client.DistributorInput) error {
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"phone", in.Phone},
		{"address", in.Address},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	if !models.ValidPhone(strings.TrimSpace(in.Phone)) {
		return usageErrorf("phone must be 10 or 11 digits")
	}
	if in.DistrictID <= 0 {
		return usageErrorf("--district is required")
	}
	if in.DistributorTypeID <= 0 {
		return usageErrorf("--type is required")
	}
	if addr := email.Normalize(in.Email); addr != "" && !email.Valid(addr) {
		return usageErrorf("email %q is invalid", in.Email)
	}
	return nil
}
