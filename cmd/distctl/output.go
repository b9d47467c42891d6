package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"distributors/pkg/client"
)

func (a *app) render(v any, table func(w io.Writer)) error {
	if a.output == "json" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (a *app) renderDistricts(list []client.District) error {
	return a.render(list, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tDISTRIBUTORS")
		for _, d := range list {
			fmt.Fprintf(w, "%d\t%s\t%d\n", d.ID, d.Name, d.DistributorCount)
		}
	})
}

func (a *app) renderTypes(list []client.DistributorType) error {
	return a.render(list, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tMAX DEBT\tDISTRIBUTORS")
		for _, t := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", t.ID, t.Name, t.MaxDebt.String(), t.DistributorCount)
		}
	})
}

func (a *app) renderDistributors(list []client.Distributor) error {
	return a.render(list, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPHONE\tDISTRICT\tTYPE\tINTAKE\tDEBT\tEMAIL")
		for _, d := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				d.ID, d.Name, d.Phone, d.DistrictName, d.DistributorTypeName, d.IntakeDate, d.Debt.String(), d.Email)
		}
	})
}

func (a *app) renderRegulations(list []client.Regulation) error {
	return a.render(list, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tVALUE\tDESCRIPTION")
		for _, r := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Value, r.Description)
		}
	})
}

// renderOne prints a single record: indented JSON, or a one-row table.
func renderOne[T any](a *app, v *T, table func([]T) error) error {
	if a.output == "json" {
		return a.render(v, nil)
	}
	return table([]T{*v})
}
