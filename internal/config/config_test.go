package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/cordexplorer/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// This test ensures that changes to defaults are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default CSVPath is metadata.csv", func(t *testing.T) {
		t.Parallel()
		if cfg.CSVPath != "metadata.csv" {
			t.Errorf("expected CSVPath to be 'metadata.csv', got '%s'", cfg.CSVPath)
		}
	})

	t.Run("default TopJournals is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.TopJournals != 10 {
			t.Errorf("expected TopJournals to be 10, got %d", cfg.TopJournals)
		}
	})

	t.Run("default Listen is loopback 8501", func(t *testing.T) {
		t.Parallel()
		if cfg.Listen != "127.0.0.1:8501" {
			t.Errorf("expected Listen to be '127.0.0.1:8501', got '%s'", cfg.Listen)
		}
	})

	t.Run("default PreviewRows is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.PreviewRows != 10 {
			t.Errorf("expected PreviewRows to be 10, got %d", cfg.PreviewRows)
		}
	})

	t.Run("default schema uses source_x", func(t *testing.T) {
		t.Parallel()
		if cfg.Schema != model.DefaultSchema() || cfg.Schema.Source != "source_x" {
			t.Errorf("unexpected default schema: %+v", cfg.Schema)
		}
	})

	t.Run("default format is text", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != FormatText {
			t.Errorf("expected Format to be text, got %q", cfg.Format)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case breaks exactly one validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "empty csv path",
			modify:  func(c *Config) { c.CSVPath = "" },
			wantErr: ErrNoInput,
		},
		{
			name:    "empty column role",
			modify:  func(c *Config) { c.Schema.Journal = "" },
			wantErr: ErrEmptyColumn,
		},
		{
			name:    "duplicate column role",
			modify:  func(c *Config) { c.Schema.Source = c.Schema.Journal },
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "zero top journals",
			modify:  func(c *Config) { c.TopJournals = 0 },
			wantErr: ErrInvalidTopJournals,
		},
		{
			name:    "negative max words",
			modify:  func(c *Config) { c.MaxWords = -1 },
			wantErr: ErrInvalidMaxWords,
		},
		{
			name:    "zero preview rows",
			modify:  func(c *Config) { c.PreviewRows = 0 },
			wantErr: ErrInvalidPreviewRows,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Format = "html" },
			wantErr: ErrUnknownFormat,
		},
		{
			name:    "empty listen address",
			modify:  func(c *Config) { c.Listen = "" },
			wantErr: ErrNoListenAddress,
		},
		{
			name:    "markdown format is valid",
			modify:  func(c *Config) { c.Format = FormatMarkdown },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestChartDir tests resolution of the chart output directory.
func TestChartDir(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if cfg.ChartDir() != "charts" {
		t.Errorf("expected default chart dir 'charts', got %q", cfg.ChartDir())
	}

	cfg.OutputDir = XDGOutputDir
	if cfg.ChartDir() != XDGChartDir() {
		t.Errorf("expected XDG chart dir, got %q", cfg.ChartDir())
	}
	if !strings.HasSuffix(cfg.ChartDir(), filepath.Join(AppName, "charts")) {
		t.Errorf("expected chart dir under %s, got %q", AppName, cfg.ChartDir())
	}
}

// TestFileApply tests that set file values override defaults and unset values do not.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.CSVPath != DefaultCSVPath || cfg.Schema != model.DefaultSchema() {
			t.Errorf("expected defaults to survive, got %+v", cfg)
		}
	})

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			CSV:         "data/meta.csv",
			Columns:     model.Schema{Source: "source"},
			TopJournals: 5,
			MaxWords:    50,
			StopWords:   []string{"covid"},
			Dashboard:   DashboardFile{Title: "Papers", Listen: ":9000", PreviewRows: 3},
			Charts:      ChartsFile{OutputDir: "xdg"},
		}
		f.Apply(cfg)

		if cfg.CSVPath != "data/meta.csv" {
			t.Errorf("unexpected CSVPath %q", cfg.CSVPath)
		}
		if cfg.Schema.Source != "source" || cfg.Schema.Title != "title" {
			t.Errorf("expected merged schema, got %+v", cfg.Schema)
		}
		if cfg.TopJournals != 5 || cfg.MaxWords != 50 || cfg.PreviewRows != 3 {
			t.Errorf("unexpected limits: %d %d %d", cfg.TopJournals, cfg.MaxWords, cfg.PreviewRows)
		}
		if len(cfg.StopWords) != 1 || cfg.StopWords[0] != "covid" {
			t.Errorf("unexpected stop words %v", cfg.StopWords)
		}
		if cfg.DashboardTitle != "Papers" || cfg.DashboardDescription != DefaultDashboardDescription {
			t.Errorf("unexpected dashboard text %q / %q", cfg.DashboardTitle, cfg.DashboardDescription)
		}
		if cfg.Listen != ":9000" || cfg.OutputDir != XDGOutputDir {
			t.Errorf("unexpected listen/output %q / %q", cfg.Listen, cfg.OutputDir)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.cordexplorer")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".cordexplorer")
		content := `csv: metadata.csv
columns:
  source: source_x
  publish_time: published
top_journals: 10
stop_words:
  - virus
dashboard:
  title: Explorer
  preview_rows: 20
charts:
  output_dir: out
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Columns.PublishTime != "published" {
			t.Errorf("expected publish_time column 'published', got %q", cf.Columns.PublishTime)
		}
		if cf.Dashboard.PreviewRows != 20 || cf.Dashboard.Title != "Explorer" {
			t.Errorf("unexpected dashboard section: %+v", cf.Dashboard)
		}
		if cf.Charts.OutputDir != "out" {
			t.Errorf("unexpected charts section: %+v", cf.Charts)
		}
		if len(cf.StopWords) != 1 {
			t.Errorf("expected 1 stop word, got %d", len(cf.StopWords))
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".cordexplorer")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("csv: a.csv"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestLoad tests building a Config from a file.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "explorer.yaml")
		if err := os.WriteFile(configPath, []byte("csv: other.csv\nmax_words: 40\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CSVPath != "other.csv" || cfg.MaxWords != 40 {
			t.Errorf("expected file values, got %q / %d", cfg.CSVPath, cfg.MaxWords)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("expected ConfigFilePath %q, got %q", configPath, cfg.ConfigFilePath)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"data":   XDGDataDir(),
		"config": XDGConfigDir(),
		"charts": XDGChartDir(),
	} {
		if dir == "" {
			t.Errorf("expected non-empty XDG %s dir", name)
		}
	}
}
