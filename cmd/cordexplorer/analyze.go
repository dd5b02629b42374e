package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/cordexplorer/internal/chart"
	"github.com/nao1215/cordexplorer/internal/config"
	"github.com/nao1215/cordexplorer/internal/model"
	"github.com/nao1215/cordexplorer/internal/pipeline"
	"github.com/nao1215/cordexplorer/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [csv]",
		Short: "Write static charts and a summary report",
		Long: `Analyze loads and cleans the metadata file, then writes four PNG charts:

- publications_by_year.png   papers per publication year
- top_journals.png           the journals with the most papers
- source_distribution.png    papers per source
- title_wordcloud.png        the most frequent words in paper titles

A summary report is printed to stdout, or written to --output.

Examples:
  # Analyze metadata.csv and write charts into ./charts
  cordexplorer analyze

  # Write charts under the XDG data directory and a Markdown report
  cordexplorer analyze --output-dir xdg --format markdown -o report.md

  # Keep the 20 most active journals
  cordexplorer analyze -t 20 data/metadata.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addInputFlag(cmd)
	addSummaryFlags(cmd)

	// Report flags
	cmd.Flags().StringP("format", "F", config.FormatText,
		"Report format: text, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("include-rows", false,
		"Include every cleaned record in the JSON report")
	cmd.Flags().StringP("output-dir", "d", config.DefaultOutputDir,
		`Directory for chart images ("xdg" uses the XDG data directory)`)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	a, err := pipeline.Run(ctx, cfg.CSVPath, pipelineOptions(cfg, logger))
	if err != nil {
		return err
	}

	charts, err := chart.NewRenderer(chart.WithLogger(logger)).RenderAll(ctx, a, cfg.ChartDir())
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d charts to %s\n", len(charts), cfg.ChartDir())

	includeRows, err := cmd.Flags().GetBool("include-rows")
	if err != nil {
		return err
	}

	return outputReport(cmd, cfg, a, charts, includeRows)
}

// outputReport outputs the summary report in the requested format.
func outputReport(cmd *cobra.Command, cfg *config.Config, a *model.Analysis, charts []string, includeRows bool) error {
	var output io.Writer = cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		opts := []report.JSONWriterOption{report.WithPrettyPrint()}
		if includeRows {
			opts = append(opts, report.WithDataset())
		}
		writer = report.NewFullJSONWriter(output, getVersion(), charts, opts...)
	case config.FormatMarkdown:
		writer = report.NewMarkdownWriter(output, report.WithChartFiles(charts...))
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(a)
	return err
}
