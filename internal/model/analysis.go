package model

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is the state of one run over a metadata file.
// It is filled in by pipeline steps and consumed by the presenters.
//
// Design decision: Like a scan report, a single struct carries everything a
// presenter needs. Presenters never reach back into the loader or the
// aggregation engine.
type Analysis struct {
	// ID identifies the run in logs and reports.
	ID string `json:"id"`

	// SourcePath is the file being analyzed.
	SourcePath string `json:"source_path"`

	// StartedAt and FinishedAt bracket the pipeline execution.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Dataset is the loaded (and, after the clean step, cleaned) table.
	Dataset *Dataset `json:"dataset,omitempty"`

	// RowsLoaded is the row count before cleaning.
	RowsLoaded int `json:"rows_loaded"`

	// RowsDropped is the number of rows removed because their publication
	// timestamp could not be parsed.
	RowsDropped int `json:"rows_dropped"`

	// Summary holds the grouped counts.
	Summary *Summary `json:"summary,omitempty"`

	// TitlesText is every title joined by a single space.
	TitlesText string `json:"-"`

	// WordCloud holds token weights for the title cloud.
	WordCloud *WordCloud `json:"word_cloud,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// Error is the step error that stopped the pipeline, if any.
	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysis creates an Analysis for the file at path.
func NewAnalysis(path string) *Analysis {
	return &Analysis{
		ID:             uuid.NewString(),
		SourcePath:     path,
		StartedAt:      time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// RowsKept returns the number of rows that survived cleaning.
func (a *Analysis) RowsKept() int {
	if a.Dataset == nil {
		return 0
	}
	return a.Dataset.Len()
}

// Preview returns up to n cleaned records for display.
func (a *Analysis) Preview(n int) []Record {
	if a.Dataset == nil {
		return nil
	}
	return a.Dataset.Head(n)
}

// Complete reports whether every artifact the presenters need is present.
func (a *Analysis) Complete() bool {
	return a.Error == nil && a.Dataset != nil && a.Summary != nil && a.WordCloud != nil
}
