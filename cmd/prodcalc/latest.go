package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/osse101/CityProduction_Go/internal/database/sqlite"
	"github.com/osse101/CityProduction_Go/internal/rules"
)

type latestOptions struct {
	storePath string
	cityID    string
	asJSON    bool
}

func newLatestCmd(root *rootOptions) *cobra.Command {
	opts := &latestOptions{}

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the latest saved report of a city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := rules.Load(root.rulesPath)
			if err != nil {
				return err
			}

			store, err := sqlite.Open(cmd.Context(), opts.storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.GetLatestCityReport(cmd.Context(), opts.cityID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return renderCity(out, registry, report)
		},
	}

	cmd.Flags().StringVar(&opts.storePath, "store", "", "SQLite file written by compute --store")
	cmd.Flags().StringVar(&opts.cityID, "city", "", "city ID")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}
