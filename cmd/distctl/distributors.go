package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"distributors/pkg/client"
)

type distributorFlags struct {
	name, phone, address, email, debt string
	district, typ                      int64
}

func (f *distributorFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "distributor name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "10 or 11 digit phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().Int64Var(&f.district, "district", 0, "district id")
	cmd.Flags().Int64Var(&f.typ, "type", 0, "distributor type id")
	cmd.Flags().StringVar(&f.email, "email", "", "contact email (optional)")
	cmd.Flags().StringVar(&f.debt, "debt", "", "current debt (default 0)")
}

// apply overlays the flags the user set onto in.
func (f *distributorFlags) apply(cmd *cobra.Command, in *client.DistributorInput) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("phone") {
		in.Phone = f.phone
	}
	if changed("address") {
		in.Address = f.address
	}
	if changed("district") {
		in.DistrictID = f.district
	}
	if changed("type") {
		in.DistributorTypeID = f.typ
	}
	if changed("email") {
		in.Email = f.email
	}
	if changed("debt") {
		debt, err := parseMoney("debt", f.debt)
		if err != nil {
			return err
		}
		in.Debt = &debt
	}
	return validateDistributor(*in)
}

func newDistributorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "distributor", Aliases: []string{"distributors"}, Short: "Manage distributors"}

	createFlags := &distributorFlags{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a distributor; the intake date is set by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in client.DistributorInput
			if err := createFlags.apply(cmd, &in); err != nil {
				return err
			}
			d, err := a.client.CreateDistributor(cmd.Context(), in)
			if err != nil {
				return err
			}
			return renderOne(a, d, a.renderDistributors)
		},
	}
	createFlags.bind(create)

	updateFlags := &distributorFlags{}
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change the fields given as flags and keep the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.client.Distributor(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := current.Input()
			if err := updateFlags.apply(cmd, &in); err != nil {
				return err
			}
			d, err := a.client.UpdateDistributor(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return renderOne(a, d, a.renderDistributors)
		},
	}
	updateFlags.bind(update)

	cmd.AddCommand(
		&cobra.Command{
			Use:  "list",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := a.client.Distributors(cmd.Context())
				if err != nil {
					return err
				}
				return a.renderDistributors(list)
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
				d, err := a.client.Distributor(cmd.Context(), id)
				if err != nil {
					return err
				}
				return renderOne(a, d, a.renderDistributors)
			},
		},
		&cobra.Command{
			Use:   "search KEYWORD",
			Short: "Case-insensitive search over name, phone, address and email",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.client.Search(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.renderDistributors(list)
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "set-debt ID AMOUNT",
			Short: "Record a new debt amount",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				debt, err := parseMoney("debt", args[1])
				if err != nil {
					return err
				}
				d, err := a.client.UpdateDebt(cmd.Context(), id, debt)
				if err != nil {
					return err
				}
				return renderOne(a, d, a.renderDistributors)
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a distributor whose debt is settled",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.client.DeleteDistributor(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "distributor %d deleted\n", id)
				return nil
			},
		},
	)
	return cmd
}
