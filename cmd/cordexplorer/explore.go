package main

import (
	"fmt"

	"github.com/nao1215/cordexplorer/internal/dataset"
	"github.com/nao1215/cordexplorer/internal/model"
	"github.com/nao1215/cordexplorer/internal/pipeline"
	"github.com/nao1215/cordexplorer/internal/report"
	"github.com/spf13/cobra"
)

// NewExploreCmd creates the explore command.
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [csv]",
		Short: "Print the first rows, shape, column types and statistics",
		Long: `Explore loads the metadata file and prints an overview of the raw table:
the first rows, the number of rows and columns, the inferred type and
non-null count of every column, and descriptive statistics.

With --cleaned the overview is printed a second time after rows with an
unparseable publish_time have been dropped.

Examples:
  # Explore metadata.csv in the current directory
  cordexplorer explore

  # Explore another file and compare with the cleaned table
  cordexplorer explore --cleaned data/metadata.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExploreCmd,
	}

	addInputFlag(cmd)
	cmd.Flags().Bool("cleaned", false,
		"Also print the overview after cleaning")
	cmd.Flags().IntP("rows", "n", report.DefaultHeadRows,
		"Number of rows shown in the head")
	cmd.Flags().Int("columns", report.DefaultMaxColumns,
		"Maximum number of columns shown in the head")

	return cmd
}

// runExploreCmd executes the explore command.
func runExploreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cleaned, err := cmd.Flags().GetBool("cleaned")
	if err != nil {
		return err
	}
	rows, err := cmd.Flags().GetInt("rows")
	if err != nil {
		return err
	}
	columns, err := cmd.Flags().GetInt("columns")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	a := model.NewAnalysis(cfg.CSVPath)
	load := pipeline.New(pipeline.WithLogger(logger))
	load.AddStep(pipeline.NewLoadStep(dataset.WithSchema(cfg.Schema)))
	if err := load.Execute(ctx, a); err != nil {
		return err
	}

	writer := report.NewExploreWriter(cmd.OutOrStdout(),
		report.WithHeadRows(rows),
		report.WithMaxColumns(columns),
	)
	if _, err := writer.Write(a); err != nil {
		return err
	}
	if !cleaned {
		return nil
	}

	clean := pipeline.New(pipeline.WithLogger(logger))
	clean.AddStep(pipeline.NewCleanStep(logger))
	if err := clean.Execute(ctx, a); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nAfter dropping rows without a valid %s:\n\n", cfg.Schema.PublishTime)
	_, err = writer.Write(a)
	return err
}
