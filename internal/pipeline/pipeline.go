package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the analysis
// filled in by previous steps.
type Step interface {
	// Do executes the pipeline step.
	Do(ctx context.Context, analysis *model.Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// The first failing step stops the pipeline; its error is recorded on the
// analysis and returned. Cancellation is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, analysis *model.Analysis) error {
	defer func() {
		analysis.FinishedAt = time.Now()
	}()

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			analysis.Error = ctx.Err()
			analysis.ErrorMessage = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"run_id", analysis.ID,
		)

		start := time.Now()
		if err := step.Do(ctx, analysis); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"run_id", analysis.ID,
				"error", err,
			)
			analysis.Error = err
			analysis.ErrorMessage = err.Error()
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"run_id", analysis.ID,
			"elapsed", time.Since(start),
		)
		analysis.PerformedSteps = append(analysis.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
