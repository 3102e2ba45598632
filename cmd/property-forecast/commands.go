package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/market"
	"github.com/iwvelando/property-forecast/internal/server"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/output"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func projectCmd() *cobra.Command {
	var configLocation, outputFormat, logLevel string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project every active property in a portfolio file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			format, err := validation.OutputFormat(firstNonEmpty(outputFormat, conf.Output.Format, constants.OutputFormatPretty))
			if err != nil {
				return err
			}

			table, err := market.FileLoader(conf.Markets.File)()
			if err != nil {
				return fmt.Errorf("failed to load market data: %w", err)
			}

			for _, warning := range conf.ValidateConfiguration(table.Names()...) {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.project"),
				)
			}

			results, err := forecast.GetForecast(logger, *conf)
			if err != nil {
				return fmt.Errorf("failed to compute forecast: %w", err)
			}

			switch format {
			case constants.OutputFormatPretty:
				output.PrettyFormat(cmd.OutOrStdout(), results)
			case constants.OutputFormatCSV:
				output.CsvFormat(cmd.OutOrStdout(), results)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to portfolio configuration file")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func marketsCmd() *cobra.Command {
	var configLocation, marketFile, sortKey, outputFormat string

	cmd := &cobra.Command{
		Use:   "markets",
		Short: "Rank markets by investment metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := validation.OutputFormat(outputFormat)
			if err != nil {
				return err
			}

			// Flags take precedence over the portfolio's markets block.
			if configLocation != "" {
				conf, err := config.LoadConfiguration(configLocation)
				if err != nil {
					return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
				}
				marketFile = firstNonEmpty(marketFile, conf.Markets.File)
				sortKey = firstNonEmpty(sortKey, conf.Markets.Sort)
			}
			key, err := validation.MarketSort(firstNonEmpty(sortKey, market.SortScore), market.SortKeys())
			if err != nil {
				return err
			}

			table, err := market.FileLoader(marketFile)()
			if err != nil {
				return fmt.Errorf("failed to load market data: %w", err)
			}

			rows, err := table.Rank(key)
			if err != nil {
				return err
			}

			switch format {
			case constants.OutputFormatPretty:
				output.MarketTable(cmd.OutOrStdout(), rows)
			case constants.OutputFormatCSV:
				output.MarketCsv(cmd.OutOrStdout(), rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configLocation, "config", "c", "", "portfolio configuration whose markets block supplies defaults")
	cmd.Flags().StringVar(&marketFile, "market-file", "", "market data file (default bundled data)")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "sort key: capRate, appreciation, rentGrowth, affordability, score (default score)")
	cmd.Flags().StringVar(&outputFormat, "output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	return cmd
}

func reportCmd() *cobra.Command {
	var marketFile string

	cmd := &cobra.Command{
		Use:   "report [market]",
		Short: "Print a market report; without a market, report on the national averages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := market.FileLoader(marketFile)()
			if err != nil {
				return fmt.Errorf("failed to load market data: %w", err)
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			analysis, err := table.Analyze(name)
			if err != nil {
				return fmt.Errorf("%w %q", err, name)
			}
			return output.Report(cmd.OutOrStdout(), analysis, time.Now())
		},
	}

	cmd.Flags().StringVar(&marketFile, "market-file", "", "market data file (default bundled data)")
	return cmd
}

func serveCmd() *cobra.Command {
	var serverConfig, address, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection and market API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			srv, err := server.New(cfg, logger, version)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address override")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}
