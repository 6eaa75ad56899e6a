package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/adapters/chart/echarts"
	"github.com/okian/podium/internal/adapters/chart/gochart"
	"github.com/okian/podium/internal/adapters/dataset"
	app "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// newRootCmd builds the podium command tree. Running podium without a
// subcommand serves the dashboard.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "podium",
		Short:         "Olympic participation dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				return os.Setenv("PODIUM_CONFIG", configPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (overrides PODIUM_CONFIG)")

	serve := newServeCmd()
	root.AddCommand(serve, newExportCmd())
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

// setup loads the configuration and initializes logging.
func setup(ctx context.Context) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return nil, nil, err
	}

	if err := logger.Init(
		logger.WithWriter(os.Stderr),
		logger.WithJSON(strings.EqualFold(cfg.LogFormat, "json")),
	); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		return nil, nil, err
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.Metrics.Namespace),
		metrics.WithSubsystem(cfg.Metrics.Subsystem),
		metrics.WithMetricPrefix(cfg.Metrics.Prefix),
		metrics.WithCustomLabels(cfg.Metrics.Labels),
		metrics.WithHistogramBuckets(cfg.Metrics.BucketsMS),
	)
	return cfg, log, nil
}

// newService wires the dashboard service from cfg.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	opts := []dataset.Option{
		dataset.WithPath(cfg.DatasetPath),
		dataset.WithURL(cfg.DatasetURL, nil),
		dataset.WithTimeout(cfg.FetchTimeout()),
		dataset.WithLogger(log.Named("dataset")),
	}
	return app.New(
		app.WithLogger(log),
		app.WithAccessor(dataset.New(opts...)),
		app.WithRenderer(newRenderer(cfg)),
		app.WithPalette(cfg.Palette),
		app.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		app.WithJournalSize(cfg.JournalSize),
	)
}

func newRenderer(cfg *config.Config) chart.Renderer {
	if strings.EqualFold(cfg.ChartFormat, config.FormatHTML) {
		return echarts.New(cfg.ChartWidth, cfg.ChartHeight)
	}
	return gochart.New(
		gochart.WithFormat(cfg.ChartFormat),
		gochart.WithSize(cfg.ChartWidth, cfg.ChartHeight),
	)
}
