package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/cordexplorer/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/cordexplorer.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cordexplorer configuration file",
		Long: `Initialize creates a new .cordexplorer configuration file in the current directory.

The generated file includes:
- The metadata file path and column names
- Ranking and word cloud limits
- Dashboard and chart output settings

Examples:
  # Create .cordexplorer in current directory
  cordexplorer init

  # Create config file at a specific path
  cordexplorer init -o myconfig.yaml

  # Create the config file in the XDG config directory
  cordexplorer init --xdg

  # Force overwrite existing file
  cordexplorer init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().Bool("xdg", false,
		"Write the configuration to the XDG config directory")
	cmd.MarkFlagsMutuallyExclusive("output", "xdg")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	useXDG, err := cmd.Flags().GetBool("xdg")
	if err != nil {
		return err
	}
	if useXDG {
		outputPath = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/cordexplorer.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - The metadata file and its column names")
	fmt.Fprintln(out, "  - Extra stop words for the title word cloud")
	fmt.Fprintln(out, "  - The dashboard address and preview size")

	return nil
}
