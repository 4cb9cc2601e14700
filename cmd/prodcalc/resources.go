package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/CityProduction_Go/internal/rules"
)

func newResourcesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resource types of the rule database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := rules.Load(root.rulesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			titleColor.Fprintf(out, "Rule database %s\n", root.rulesPath)
			fmt.Fprintf(out, "Digest: %s\n\n", registry.Digest())

			table := tablewriter.NewTable(out,
				tablewriter.WithHeader([]string{"ID", "Name", "Default Bucket", "Rounding"}),
			)
			for _, p := range registry.Policies() {
				table.Append([]string{
					string(p.ResourceType),
					registry.DisplayName(p.ResourceType),
					p.DefaultBucket.String(),
					p.Rounding.String(),
				})
			}
			return table.Render()
		},
	}
}
