package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/cordexplorer/internal/config"
	"github.com/nao1215/cordexplorer/internal/dashboard"
	applog "github.com/nao1215/cordexplorer/internal/log"
	"github.com/nao1215/cordexplorer/internal/model"
	"github.com/nao1215/cordexplorer/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [csv]",
		Short: "Serve an interactive dashboard over HTTP",
		Long: `Serve starts a web dashboard with four charts (publications over time,
top publishing journals, papers by source and a title word cloud) followed
by a sample of the cleaned rows.

The metadata file is loaded and cleaned on the first request and cached
for the lifetime of the server. POST /api/reload reads it again.

Examples:
  # Serve on the default address
  cordexplorer serve

  # Listen on all interfaces and show 25 preview rows
  cordexplorer serve -l :8080 --preview-rows 25 data/metadata.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServeCmd,
	}

	addInputFlag(cmd)
	addSummaryFlags(cmd)

	cmd.Flags().StringP("listen", "l", config.DefaultListen,
		"Address to listen on in host:port format")
	cmd.Flags().Int("preview-rows", config.DefaultPreviewRows,
		"Number of cleaned rows in the raw data sample")
	cmd.Flags().String("title", config.DefaultDashboardTitle,
		"Dashboard page title")
	cmd.Flags().Bool("preload", false,
		"Load the dataset before accepting requests")
	cmd.Flags().Bool("json-log", false,
		"Write logs as JSON")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonLog, err := cmd.Flags().GetBool("json-log")
	if err != nil {
		return err
	}
	preload, err := cmd.Flags().GetBool("preload")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
	if jsonLog {
		logger = applog.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	srv, cache, err := newDashboard(cfg, logger)
	if err != nil {
		return err
	}

	if preload {
		if _, err := cache.Get(ctx); err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.CSVPath, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", cfg.CSVPath, cfg.Listen)
	return srv.Run(ctx, cfg.Listen)
}

// newDashboard wires the session cache, metrics and HTTP server for cfg.
func newDashboard(cfg *config.Config, logger *slog.Logger) (*dashboard.Server, *dashboard.SessionCache, error) {
	opts := pipelineOptions(cfg, logger)
	load := func(ctx context.Context) (*model.Analysis, error) {
		a, err := pipeline.Run(ctx, cfg.CSVPath, opts)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	metrics := dashboard.NewMetrics()
	cache := dashboard.NewSessionCache(load, dashboard.WithLoadObserver(metrics.ObserveLoad))

	srv, err := dashboard.New(cache,
		dashboard.WithLogger(logger),
		dashboard.WithMetrics(metrics),
		dashboard.WithPage(dashboard.PageConfig{
			Title:       cfg.DashboardTitle,
			Description: cfg.DashboardDescription,
			PreviewRows: cfg.PreviewRows,
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	return srv, cache, nil
}
