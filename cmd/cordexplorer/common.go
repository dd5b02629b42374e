package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/cordexplorer/internal/analysis"
	"github.com/nao1215/cordexplorer/internal/config"
	"github.com/nao1215/cordexplorer/internal/dataset"
	applog "github.com/nao1215/cordexplorer/internal/log"
	"github.com/nao1215/cordexplorer/internal/pipeline"
	"github.com/spf13/cobra"
)

// errTwoInputs is returned when both a positional file and --file are given.
var errTwoInputs = errors.New("specify the CSV file either as an argument or with --file, not both")

// addInputFlag registers --file on commands that read the metadata file.
func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().String("file", "",
		"Metadata CSV file (default: csv key of the config file, or metadata.csv)")
}

// addSummaryFlags registers the flags that shape the aggregation and word cloud.
func addSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("top-journals", "t", config.DefaultTopJournals,
		"Number of journals in the ranking")
	cmd.Flags().IntP("max-words", "w", config.DefaultMaxWords,
		"Maximum number of words in the title word cloud")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// buildConfig creates a Config from defaults, the config file and the
// command flags, in increasing priority. Only flags the user actually set
// override the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)

	file, err := changedString(cmd, "file")
	if err != nil {
		return nil, err
	}
	switch {
	case file != "" && len(args) > 0:
		return nil, errTwoInputs
	case file != "":
		cfg.CSVPath = file
	case len(args) > 0:
		cfg.CSVPath = args[0]
	}

	overrides := []struct {
		name string
		dst  any
	}{
		{"top-journals", &cfg.TopJournals},
		{"max-words", &cfg.MaxWords},
		{"format", &cfg.Format},
		{"output", &cfg.ReportFile},
		{"output-dir", &cfg.OutputDir},
		{"listen", &cfg.Listen},
		{"preview-rows", &cfg.PreviewRows},
		{"title", &cfg.DashboardTitle},
	}
	for _, o := range overrides {
		if err := override(cmd, o.name, o.dst); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// override copies a flag value into dst when the flag exists on cmd and
// was set on the command line.
func override(cmd *cobra.Command, name string, dst any) error {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil
	}

	var err error
	switch d := dst.(type) {
	case *int:
		*d, err = cmd.Flags().GetInt(name)
	case *string:
		*d, err = cmd.Flags().GetString(name)
	default:
		err = fmt.Errorf("unsupported flag destination for --%s", name)
	}
	return err
}

// changedString returns the value of a string flag, or "" when the flag is
// absent or unset.
func changedString(cmd *cobra.Command, name string) (string, error) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return "", nil
	}
	return cmd.Flags().GetString(name)
}

// setupLogger creates a structured logger on the command's error stream.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	return applog.NewLogger(cmd.ErrOrStderr(), verbose)
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// pipelineOptions maps the configuration onto pipeline step options.
func pipelineOptions(cfg *config.Config, logger *slog.Logger) pipeline.Options {
	return pipeline.Options{
		Logger: logger,
		Load:   []dataset.LoadOption{dataset.WithSchema(cfg.Schema)},
		Aggregate: []analysis.AggregatorOption{
			analysis.WithTopJournals(cfg.TopJournals),
		},
		WordCloud: []analysis.WordOption{
			analysis.WithMaxWords(cfg.MaxWords),
			analysis.WithExtraStopWords(cfg.StopWords...),
		},
	}
}
