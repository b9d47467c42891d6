package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"distributors/pkg/client"
)

func newRegulationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "regulation", Aliases: []string{"regulations"}, Short: "Manage regulations"}

	var description string
	create := &cobra.Command{
		Use:  "create NAME VALUE",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireText("name", args[0]); err != nil {
				return err
			}
			r, err := a.client.CreateRegulation(cmd.Context(), client.Regulation{Name: args[0], Value: args[1], Description: description})
			if err != nil {
				return err
			}
			return renderOne(a, r, a.renderRegulations)
		},
	}
	create.Flags().StringVar(&description, "description", "", "what the regulation controls")

	ensure := &cobra.Command{
		Use:   "ensure NAME DEFAULT",
		Short: "Create the regulation with DEFAULT unless it already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireText("name", args[0]); err != nil {
				return err
			}
			r, _, err := a.client.EnsureRegulation(cmd.Context(), client.Regulation{Name: args[0], Value: args[1], Description: description})
			if err != nil {
				return err
			}
			return renderOne(a, r, a.renderRegulations)
		},
	}
	ensure.Flags().StringVar(&description, "description", "", "description used when creating")

	cmd.AddCommand(
		&cobra.Command{
			Use:  "list",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := a.client.Regulations(cmd.Context())
				if err != nil {
					return err
				}
				return a.renderRegulations(list)
			},
		},
		&cobra.Command{
			Use:  "get NAME",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.client.RegulationByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return renderOne(a, r, a.renderRegulations)
			},
		},
		create,
		ensure,
		&cobra.Command{
			Use:   "set ID VALUE",
			Short: "Change a regulation's value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				r, err := a.client.SetRegulationValue(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				return renderOne(a, r, a.renderRegulations)
			},
		},
		&cobra.Command{
			Use:  "delete ID",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.client.DeleteRegulation(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "regulation %d deleted\n", id)
				return nil
			},
		},
	)
	return cmd
}
