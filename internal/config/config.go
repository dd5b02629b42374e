package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "cordexplorer"

	// DefaultCSVPath is the metadata file read when none is given.
	DefaultCSVPath = "metadata.csv"

	// DefaultTopJournals is the number of journals kept in the ranking.
	DefaultTopJournals = model.DefaultTopJournals

	// DefaultMaxWords caps the word cloud vocabulary.
	DefaultMaxWords = 200

	// DefaultOutputDir is where batch mode writes chart images.
	DefaultOutputDir = "charts"

	// XDGOutputDir is the OutputDir value that selects the XDG data directory.
	XDGOutputDir = "xdg"

	// DefaultListen is the dashboard listen address. Loopback only; the
	// dashboard has no authentication.
	DefaultListen = "127.0.0.1:8501"

	// DefaultPreviewRows is the size of the raw data sample on the dashboard.
	DefaultPreviewRows = 10

	// DefaultDashboardTitle is the dashboard page title.
	DefaultDashboardTitle = "CORD-19 Data Explorer"

	// DefaultDashboardDescription is shown under the dashboard title.
	DefaultDashboardDescription = "A simple application to explore the COVID-19 Open Research Dataset."
)

// Report formats accepted by the analyze command.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for cordexplorer.
// It is populated from defaults, then the config file, then CLI flags, and
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable.
type Config struct {
	// CSVPath is the metadata file to analyze.
	CSVPath string

	// Schema maps the four column roles to header names.
	Schema model.Schema

	// TopJournals is the size of the journal ranking.
	TopJournals int

	// MaxWords caps the number of words in the title cloud.
	MaxWords int

	// StopWords are removed from titles in addition to the English list.
	StopWords []string

	// OutputDir is the directory for chart images in batch mode.
	// The value "xdg" selects XDGChartDir().
	OutputDir string

	// Format is the analyze report format: text, json or markdown.
	Format string

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Listen is the dashboard address in "host:port" format.
	Listen string

	// DashboardTitle and DashboardDescription head the dashboard page.
	DashboardTitle       string
	DashboardDescription string

	// PreviewRows is the number of cleaned rows shown on the dashboard.
	PreviewRows int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .cordexplorer in the current directory,
	// then in the user's home directory, then in XDGConfigDir.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		CSVPath:              DefaultCSVPath,
		Schema:               model.DefaultSchema(),
		TopJournals:          DefaultTopJournals,
		MaxWords:             DefaultMaxWords,
		OutputDir:            DefaultOutputDir,
		Format:               FormatText,
		Listen:               DefaultListen,
		DashboardTitle:       DefaultDashboardTitle,
		DashboardDescription: DefaultDashboardDescription,
		PreviewRows:          DefaultPreviewRows,
	}
}

// XDGDataDir returns the XDG data directory for cordexplorer.
// On Linux: ~/.local/share/cordexplorer
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cordexplorer.
// On Linux: ~/.config/cordexplorer
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGChartDir returns the chart directory under the XDG data directory.
func XDGChartDir() string {
	return filepath.Join(XDGDataDir(), "charts")
}

// ChartDir returns the directory charts are written to, resolving the
// "xdg" keyword.
func (c *Config) ChartDir() string {
	if c.OutputDir == XDGOutputDir {
		return XDGChartDir()
	}
	return c.OutputDir
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return ErrNoInput
	}

	if err := validateSchema(c.Schema); err != nil {
		return err
	}

	if c.TopJournals <= 0 {
		return ErrInvalidTopJournals
	}

	if c.MaxWords <= 0 {
		return ErrInvalidMaxWords
	}

	if c.PreviewRows <= 0 {
		return ErrInvalidPreviewRows
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrUnknownFormat
	}

	if c.Listen == "" {
		return ErrNoListenAddress
	}

	return nil
}

// validateSchema requires every role to name a distinct column.
func validateSchema(s model.Schema) error {
	roles := []string{s.Title, s.Journal, s.PublishTime, s.Source}
	seen := make(map[string]bool, len(roles))
	for _, col := range roles {
		if col == "" {
			return ErrEmptyColumn
		}
		if seen[col] {
			return ErrDuplicateColumn
		}
		seen[col] = true
	}
	return nil
}
