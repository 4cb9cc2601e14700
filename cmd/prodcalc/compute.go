package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/CityProduction_Go/internal/city"
	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/database/sqlite"
	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/repository"
	"github.com/osse101/CityProduction_Go/internal/rules"
	"github.com/osse101/CityProduction_Go/internal/validation"
)

type computeOptions struct {
	inputPath  string
	schemaPath string
	lenient    bool
	asJSON     bool
	workers    int
	storePath  string
}

func newComputeCmd(root *rootOptions) *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute production for a city or turn feed",
		Long: `Validates the input feed against the contributions schema, runs the
accumulation engine and prints flat before, percentage, flat after and the
rounded total for every resource type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputPath, "input", "", "path to a city or turn contribution feed (JSON, optionally .gz or .zst)")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", config.ConfigPathContributionsSchema, "path to the contributions JSON schema")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "skip odd flat-after contributions instead of failing the resource type")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&opts.workers, "workers", config.DefaultRecomputeWorkers, "cities recomputed in parallel for turn feeds")
	cmd.Flags().StringVar(&opts.storePath, "store", "", "SQLite file to save the city reports into")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runCompute(cmd *cobra.Command, root *rootOptions, opts *computeOptions) error {
	registry, err := rules.Load(root.rulesPath)
	if err != nil {
		return err
	}

	feed, err := validation.NewFeedDecoder(validation.NewSchemaValidator(), opts.schemaPath).DecodeFile(opts.inputPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var repo repository.ProductionReports
	if opts.storePath != "" {
		store, err := sqlite.Open(ctx, opts.storePath)
		if err != nil {
			return err
		}
		defer store.Close()
		repo = store
	}

	svc := city.NewService(registry, repo, city.Config{
		StrictParity: !opts.lenient,
		Workers:      opts.workers,
	})

	var report *domain.TurnReport
	if feed.IsTurn {
		report, err = svc.RecomputeTurn(ctx, feed.Turn, feed.Cities)
	} else {
		report, err = recomputeSingle(ctx, svc, feed.Cities[0])
	}
	// Drains queued saves before the store closes
	if shutdownErr := svc.Shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if err := renderTurn(out, registry, report); err != nil {
		return err
	}

	if n := failureCount(report); n > 0 {
		return fmt.Errorf("%d failure(s) during recomputation", n)
	}
	return nil
}

// recomputeSingle wraps one city in a turn report so both feed kinds render alike
func recomputeSingle(ctx context.Context, svc city.Service, in domain.CityContributions) (*domain.TurnReport, error) {
	report, err := svc.Recompute(ctx, in)
	if err != nil {
		return nil, err
	}
	return &domain.TurnReport{Turn: in.Turn, Cities: []*domain.CityProductionReport{report}}, nil
}

func failureCount(r *domain.TurnReport) int {
	n := len(r.Failures)
	for _, c := range r.Cities {
		n += len(c.Failures)
	}
	return n
}
