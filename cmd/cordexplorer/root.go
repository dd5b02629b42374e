package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cordexplorer.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cordexplorer",
		Short: "Explore the CORD-19 research paper metadata",
		Long: `cordexplorer loads the CORD-19 metadata.csv file, drops rows whose
publication time cannot be parsed, and summarizes what is left:
publications per year, the most active journals, papers per source and
the most frequent words in paper titles.

Use "explore" to inspect the raw table, "analyze" to write static charts
and a report, and "serve" to open an interactive dashboard.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .cordexplorer in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewExploreCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
