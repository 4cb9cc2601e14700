package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
)

type displayNamer interface {
	DisplayName(id domain.ResourceTypeID) string
}

// formatDoubled renders a half-unit amount as a decimal: 7 -> "3.5"
func formatDoubled(doubled int) string {
	whole, half := doubled/2, doubled%2
	switch {
	case half == 0:
		return fmt.Sprintf("%d", whole)
	case doubled < 0 && whole == 0:
		return "-0.5"
	default:
		return fmt.Sprintf("%d.5", whole)
	}
}

func renderTurn(w io.Writer, names displayNamer, report *domain.TurnReport) error {
	for _, c := range report.Cities {
		if err := renderCity(w, names, c); err != nil {
			return err
		}
	}

	if len(report.Failures) > 0 {
		failureColor.Fprintf(w, "\n%d city failure(s)\n", len(report.Failures))
		table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"City", "Error"}))
		for _, f := range report.Failures {
			table.Append([]string{f.CityID, f.Error})
		}
		return table.Render()
	}
	return nil
}

func renderCity(w io.Writer, names displayNamer, r *domain.CityProductionReport) error {
	titleColor.Fprintf(w, "\nCity %s, turn %d\n", r.CityID, r.Turn)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Flat Before", "Percent", "Flat After", "Rounding", "Total", "Skipped"}),
	)
	for _, line := range r.Lines {
		table.Append([]string{
			fmt.Sprintf("%s (%s)", names.DisplayName(line.ResourceType), line.ResourceType),
			formatDoubled(line.FlatBeforeBonus),
			fmt.Sprintf("%+d%%", line.PercentageBonus),
			formatDoubled(line.FlatAfterBonus),
			line.Rounding.String(),
			fmt.Sprintf("%d", line.Total),
			fmt.Sprintf("%d", line.RejectedEntries),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(r.Failures) == 0 {
		successColor.Fprintf(w, "All %d resource types computed\n", len(r.Lines))
		return nil
	}

	failureColor.Fprintf(w, "%d resource type failure(s)\n", len(r.Failures))
	table = tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Resource", "Reason", "Error"}))
	for _, f := range r.Failures {
		table.Append([]string{string(f.ResourceType), f.Reason, f.Error})
	}
	return table.Render()
}
