package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/cordexplorer/internal/database"
	"github.com/nao1215/cordexplorer/internal/model"
)

// ErrNotCleaned is returned when aggregating a dataset that has not been
// through cleaning. Years are only meaningful after cleaning.
var ErrNotCleaned = errors.New("dataset has not been cleaned")

// Aggregator computes the grouped counts of a cleaned dataset.
type Aggregator struct {
	db          *database.FrameDB
	topJournals int
	logger      *slog.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithTopJournals sets how many journals to keep. Non-positive values keep
// the default of model.DefaultTopJournals.
func WithTopJournals(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.topJournals = n
		}
	}
}

// WithAggregatorLogger sets the logger.
func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// NewAggregator creates an Aggregator backed by db.
func NewAggregator(db *database.FrameDB, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		db:          db,
		topJournals: model.DefaultTopJournals,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Aggregate copies ds into the engine and computes year, journal and source
// counts. Previous contents of the engine are replaced.
func (a *Aggregator) Aggregate(ctx context.Context, ds *model.Dataset) (*model.Summary, error) {
	if !ds.Cleaned {
		return nil, ErrNotCleaned
	}

	if err := a.db.ReplacePapers(ctx, ds.Records); err != nil {
		return nil, err
	}

	years, err := a.db.CountByYear(ctx)
	if err != nil {
		return nil, err
	}
	journals, err := a.db.CountBy(ctx, database.ColumnJournal, a.topJournals)
	if err != nil {
		return nil, err
	}
	sources, err := a.db.CountBy(ctx, database.ColumnSource, database.NoLimit)
	if err != nil {
		return nil, err
	}

	if total := model.Total(sources); total != ds.Len() {
		return nil, fmt.Errorf("source counts cover %d rows, dataset has %d", total, ds.Len())
	}

	a.logger.Debug("dataset aggregated",
		"years", len(years),
		"journals", len(journals),
		"sources", len(sources),
	)

	return &model.Summary{
		YearCounts:   years,
		TopJournals:  journals,
		SourceCounts: sources,
	}, nil
}
