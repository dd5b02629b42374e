package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/cordexplorer/internal/analysis"
	"github.com/nao1215/cordexplorer/internal/database"
	"github.com/nao1215/cordexplorer/internal/dataset"
	"github.com/nao1215/cordexplorer/internal/model"
)

// Step names, in default execution order.
const (
	StepLoad      = "load"
	StepClean     = "clean"
	StepAggregate = "aggregate"
	StepWordCloud = "word_cloud"
)

// errNoDataset is returned by steps that run before a dataset is loaded.
var errNoDataset = errors.New("no dataset loaded")

// LoadStep reads the metadata file named by the analysis source path.
type LoadStep struct {
	opts []dataset.LoadOption
}

// NewLoadStep creates a LoadStep. opts are passed to dataset.Load.
func NewLoadStep(opts ...dataset.LoadOption) *LoadStep {
	return &LoadStep{opts: opts}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return StepLoad
}

// Do loads the dataset.
func (s *LoadStep) Do(_ context.Context, a *model.Analysis) error {
	ds, err := dataset.Load(a.SourcePath, s.opts...)
	if err != nil {
		return err
	}
	a.Dataset = ds
	a.RowsLoaded = ds.Len()
	return nil
}

// CleanStep coerce-parses publication timestamps and drops rows that fail.
type CleanStep struct {
	logger *slog.Logger
}

// NewCleanStep creates a CleanStep.
func NewCleanStep(logger *slog.Logger) *CleanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanStep{logger: logger}
}

// Name returns the step name.
func (s *CleanStep) Name() string {
	return StepClean
}

// Do cleans the dataset in place and records the dropped row count.
func (s *CleanStep) Do(_ context.Context, a *model.Analysis) error {
	if a.Dataset == nil {
		return errNoDataset
	}
	result := dataset.Clean(a.Dataset, dataset.WithCleanLogger(s.logger))
	a.RowsDropped = result.Dropped
	return nil
}

// AggregateStep computes year, journal and source counts.
type AggregateStep struct {
	aggregator *analysis.Aggregator
}

// NewAggregateStep creates an AggregateStep backed by db.
func NewAggregateStep(db *database.FrameDB, opts ...analysis.AggregatorOption) *AggregateStep {
	return &AggregateStep{aggregator: analysis.NewAggregator(db, opts...)}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return StepAggregate
}

// Do aggregates the cleaned dataset.
func (s *AggregateStep) Do(ctx context.Context, a *model.Analysis) error {
	if a.Dataset == nil {
		return errNoDataset
	}
	summary, err := s.aggregator.Aggregate(ctx, a.Dataset)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	a.Summary = summary
	return nil
}

// WordCloudStep concatenates titles and computes word weights.
type WordCloudStep struct {
	counter *analysis.WordCounter
}

// NewWordCloudStep creates a WordCloudStep.
func NewWordCloudStep(opts ...analysis.WordOption) (*WordCloudStep, error) {
	counter, err := analysis.NewWordCounter(opts...)
	if err != nil {
		return nil, err
	}
	return &WordCloudStep{counter: counter}, nil
}

// Name returns the step name.
func (s *WordCloudStep) Name() string {
	return StepWordCloud
}

// Do computes the title word cloud.
func (s *WordCloudStep) Do(_ context.Context, a *model.Analysis) error {
	if a.Dataset == nil {
		return errNoDataset
	}
	a.TitlesText = analysis.TitlesText(a.Dataset)
	a.WordCloud = s.counter.Count(a.TitlesText)
	return nil
}

// Options configures DefaultPipeline.
type Options struct {
	Logger    *slog.Logger
	Load      []dataset.LoadOption
	Aggregate []analysis.AggregatorOption
	WordCloud []analysis.WordOption
}

// DefaultPipeline builds the load, clean, aggregate and word cloud
// pipeline over db.
func DefaultPipeline(db *database.FrameDB, opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if db == nil {
		return nil, errors.New("aggregation requires a database")
	}

	wordStep, err := NewWordCloudStep(opts.WordCloud...)
	if err != nil {
		return nil, err
	}
	aggOpts := append([]analysis.AggregatorOption{analysis.WithAggregatorLogger(logger)}, opts.Aggregate...)

	p := New(WithLogger(logger))
	p.AddSteps(
		NewLoadStep(opts.Load...),
		NewCleanStep(logger),
		NewAggregateStep(db, aggOpts...),
		wordStep,
	)
	return p, nil
}

// Run opens an in-memory engine, executes the default pipeline over the
// file at path and returns the filled analysis. The analysis is returned
// even on failure so callers can report what ran.
func Run(ctx context.Context, path string, opts Options) (*model.Analysis, error) {
	a := model.NewAnalysis(path)

	db, err := database.Open(ctx)
	if err != nil {
		return a, err
	}
	defer db.Close()

	p, err := DefaultPipeline(db, opts)
	if err != nil {
		return a, err
	}
	return a, p.Execute(ctx, a)
}
