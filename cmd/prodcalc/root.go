package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/logger"
)

type rootOptions struct {
	rulesPath string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "prodcalc",
		Short: "City production calculator",
		Long: `Runs the production accumulation engine over a contribution feed
and prints the per-resource breakdown, without the HTTP service.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logger.DefaultConfig()
			cfg.Level = opts.logLevel
			cfg.ServiceName = "prodcalc"
			logger.InitLoggerWithWriter(cfg, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.rulesPath, "rules", config.ConfigPathResourceTypes, "path to the rule database (.xml, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logger.LogLevelWarn, "log level (debug, info, warn, error)")

	cmd.AddCommand(newComputeCmd(opts))
	cmd.AddCommand(newResourcesCmd(opts))
	cmd.AddCommand(newLatestCmd(opts))
	return cmd
}
