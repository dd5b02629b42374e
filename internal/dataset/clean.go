package dataset

import (
	"log/slog"
	"slices"
	"time"

	"github.com/araddon/dateparse"
	"github.com/nao1215/cordexplorer/internal/model"
)

// CleanResult reports how many rows the cleaning step removed.
type CleanResult struct {
	Before  int `json:"before"`
	After   int `json:"after"`
	Dropped int `json:"dropped"`
}

type cleanOptions struct {
	logger   *slog.Logger
	location *time.Location
}

// CleanOption configures Clean.
type CleanOption func(*cleanOptions)

// WithCleanLogger sets the logger used to report dropped rows.
func WithCleanLogger(logger *slog.Logger) CleanOption {
	return func(o *cleanOptions) {
		o.logger = logger
	}
}

// WithLocation sets the time zone assumed for timestamps without one.
// The default is UTC so derived years do not depend on the host.
func WithLocation(loc *time.Location) CleanOption {
	return func(o *cleanOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// Clean parses the publication timestamp of every record in place.
// Records whose timestamp is empty or unparseable are removed; survivors get
// PublishTime and PublishYear. Clean is idempotent.
func Clean(ds *model.Dataset, opts ...CleanOption) CleanResult {
	o := cleanOptions{
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	result := CleanResult{Before: ds.Len()}

	kept := ds.Records[:0]
	for _, rec := range ds.Records {
		t, ok := ParseTime(rec.PublishTimeRaw, o.location)
		if !ok {
			o.logger.Debug("dropping row with unparseable publish time",
				"row", rec.Row,
				"value", rec.PublishTimeRaw,
			)
			continue
		}
		rec.PublishTime = t
		rec.PublishYear = t.Year()
		kept = append(kept, rec)
	}
	// Release references held by the dropped tail.
	clear(ds.Records[len(kept):])
	ds.Records = kept

	if !slices.Contains(ds.Columns, model.PublishYearColumn) {
		ds.Columns = append(ds.Columns, model.PublishYearColumn)
	}
	ds.Cleaned = true

	result.After = ds.Len()
	result.Dropped = result.Before - result.After

	o.logger.Info("dataset cleaned",
		"path", ds.Path,
		"rows_before", result.Before,
		"rows_after", result.After,
		"rows_dropped", result.Dropped,
	)
	return result
}

// ParseTime coerce-parses a timestamp. It reports false instead of
// returning an error so a bad value only marks the row as missing.
func ParseTime(value string, loc *time.Location) (t time.Time, ok bool) {
	// dateparse panics on a few malformed inputs.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
