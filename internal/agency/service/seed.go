package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
)

// SeedDevelopmentData loads reference districts, types and the district quota
// into an empty registry. It does nothing when any district already exists.
func (s *Service) SeedDevelopmentData(ctx context.Context) error {
	existing, err := s.ListDistricts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range []string{"Quan 1", "Quan 3", "Thu Duc"} {
		if _, err := s.CreateDistrict(ctx, name); err != nil {
			return fmt.Errorf("seed district %s: %w", name, err)
		}
	}
	types := []struct {
		name    string
		maxDebt int64
	}{
		{"Loai 1", 20_000_000},
		{"Loai 2", 50_000_000},
	}
	for _, t := range types {
		if _, err := s.CreateDistributorType(ctx, t.name, decimal.NewFromInt(t.maxDebt)); err != nil {
			return fmt.Errorf("seed distributor type %s: %w", t.name, err)
		}
	}
	if _, _, err := s.EnsureRegulation(ctx, models.Regulation{
		Name:        models.RegulationMaxDistributorsPerDistrict,
		Value:       "4",
		Description: "Maximum number of distributors in one district",
	}); err != nil {
		return fmt.Errorf("seed regulation: %w", err)
	}
	return nil
}
