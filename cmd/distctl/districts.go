package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDistrictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "district", Aliases: []string{"districts"}, Short: "Manage districts"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List districts with their distributor counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := a.client.Districts(cmd.Context())
				if err != nil {
					return err
				}
				return a.renderDistricts(list)
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
				d, err := a.client.District(cmd.Context(), id)
				if err != nil {
					return err
				}
				return renderOne(a, d, a.renderDistricts)
			},
		},
		&cobra.Command{
			Use:  "create NAME",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireText("name", args[0]); err != nil {
					return err
				}
				d, err := a.client.CreateDistrict(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return renderOne(a, d, a.renderDistricts)
			},
		},
		&cobra.Command{
			Use:  "rename ID NAME",
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := requireText("name", args[1]); err != nil {
					return err
				}
				d, err := a.client.UpdateDistrict(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				return renderOne(a, d, a.renderDistricts)
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a district that has no distributors",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.client.DeleteDistrict(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "district %d deleted\n", id)
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
				list, err := a.client.DistrictDistributors(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.renderDistributors(list)
			},
		},
	)
	return cmd
}
