package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "type", Aliases: []string{"types"}, Short: "Manage distributor types"}

	var name, maxDebt string
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireText("name", name); err != nil {
				return err
			}
			ceiling, err := parseMoney("max-debt", maxDebt)
			if err != nil {
				return err
			}
			t, err := a.client.CreateDistributorType(cmd.Context(), name, ceiling)
			if err != nil {
				return err
			}
			return renderOne(a, t, a.renderTypes)
		},
	}
	create.Flags().StringVar(&name, "name", "", "type name")
	create.Flags().StringVar(&maxDebt, "max-debt", "", "debt ceiling for distributors of this type")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a type or change its debt ceiling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.client.DistributorType(cmd.Context(), id)
			if err != nil {
				return err
			}
			newName, ceiling := current.Name, current.MaxDebt
			if cmd.Flags().Changed("name") {
				if err := requireText("name", name); err != nil {
					return err
				}
				newName = name
			}
			if cmd.Flags().Changed("max-debt") {
				if ceiling, err = parseMoney("max-debt", maxDebt); err != nil {
					return err
				}
			}
			t, err := a.client.UpdateDistributorType(cmd.Context(), id, newName, ceiling)
			if err != nil {
				return err
			}
			return renderOne(a, t, a.renderTypes)
		},
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&maxDebt, "max-debt", "", "new debt ceiling")

	cmd.AddCommand(
		&cobra.Command{
			Use:  "list",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := a.client.DistributorTypes(cmd.Context())
				if err != nil {
					return err
				}
				return a.renderTypes(list)
			},
		},
		&cobra.Command{
			Use:  "get ID",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				t, err := a.client.DistributorType(cmd.Context(), id)
				if err != nil {
					return err
				}
				return renderOne(a, t, a.renderTypes)
			},
		},
		create,
		update,
		&cobra.Command{
			Use:  "delete ID",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.client.DeleteDistributorType(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "distributor type %d deleted\n", id)
				return nil
			},
		},
		&cobra.Command{
			Use:  "distributors ID",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				list, err := a.client.TypeDistributors(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.renderDistributors(list)
			},
		},
	)
	return cmd
}

// parseMoney accepts a non-negative whole amount.
func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, usageErrorf("--%s is required", field)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, usageErrorf("--%s: %q is not a number", field, raw)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, usageErrorf("--%s must not be negative", field)
	}
	if !v.Equal(v.Truncate(0)) {
		return decimal.Decimal{}, usageErrorf("--%s must be a whole amount", field)
	}
	return v, nil
}
