package config

import "github.com/nao1215/cordexplorer/internal/model"

// DashboardFile holds the dashboard section of the configuration file.
type DashboardFile struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Listen      string `yaml:"listen,omitempty"`
	PreviewRows int    `yaml:"preview_rows,omitempty"`
}

// ChartsFile holds the charts section of the configuration file.
type ChartsFile struct {
	// OutputDir is a directory path or "xdg".
	OutputDir string `yaml:"output_dir,omitempty"`
}

// File represents the structure of the .cordexplorer configuration file.
// Zero values mean "not set" and leave the existing configuration alone.
type File struct {
	CSV         string        `yaml:"csv,omitempty"`
	Columns     model.Schema  `yaml:"columns,omitempty"`
	TopJournals int           `yaml:"top_journals,omitempty"`
	MaxWords    int           `yaml:"max_words,omitempty"`
	StopWords   []string      `yaml:"stop_words,omitempty"`
	Dashboard   DashboardFile `yaml:"dashboard,omitempty"`
	Charts      ChartsFile    `yaml:"charts,omitempty"`
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.CSV != "" {
		cfg.CSVPath = f.CSV
	}
	cfg.Schema = f.Columns.Merge(cfg.Schema)
	if f.TopJournals != 0 {
		cfg.TopJournals = f.TopJournals
	}
	if f.MaxWords != 0 {
		cfg.MaxWords = f.MaxWords
	}
	if len(f.StopWords) > 0 {
		cfg.StopWords = append([]string(nil), f.StopWords...)
	}
	if f.Dashboard.Title != "" {
		cfg.DashboardTitle = f.Dashboard.Title
	}
	if f.Dashboard.Description != "" {
		cfg.DashboardDescription = f.Dashboard.Description
	}
	if f.Dashboard.Listen != "" {
		cfg.Listen = f.Dashboard.Listen
	}
	if f.Dashboard.PreviewRows != 0 {
		cfg.PreviewRows = f.Dashboard.PreviewRows
	}
	if f.Charts.OutputDir != "" {
		cfg.OutputDir = f.Charts.OutputDir
	}
}
