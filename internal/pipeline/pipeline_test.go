package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/cordexplorer/internal/model"
)

// mockStep is a test implementation of the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, analysis *model.Analysis) error
	callCount int
}

func (m *mockStep) Do(ctx context.Context, analysis *model.Analysis) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, analysis)
	}
	return nil
}

func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests pipeline creation.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates empty pipeline", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithLogger", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		p := New(WithLogger(logger))

		if p.logger != logger {
			t.Error("expected custom logger")
		}
	})
}

// TestPipelineAddStep tests adding steps.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds multiple steps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "step-1"}, &mockStep{name: "step-2"}, &mockStep{name: "step-3"})

		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddStep(&mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		expected := []string{"first", "second", "third"}
		for i, name := range p.StepNames() {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		p.AddStep(&mockStep{
			name: "step-1",
			doFunc: func(_ context.Context, _ *model.Analysis) error {
				executionOrder = append(executionOrder, "step-1")
				return nil
			},
		})
		p.AddStep(&mockStep{
			name: "step-2",
			doFunc: func(_ context.Context, _ *model.Analysis) error {
				executionOrder = append(executionOrder, "step-2")
				return nil
			},
		})

		a := model.NewAnalysis("metadata.csv")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(a.PerformedSteps) != 2 {
			t.Errorf("expected 2 performed steps, got %v", a.PerformedSteps)
		}
		if a.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Analysis) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		a := model.NewAnalysis("metadata.csv")
		err := p.Execute(context.Background(), a)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if !errors.Is(a.Error, expectedErr) || a.ErrorMessage != "step failed" {
			t.Errorf("expected error recorded on analysis, got %v / %q", a.Error, a.ErrorMessage)
		}
		if len(a.PerformedSteps) != 0 {
			t.Errorf("failed step should not be recorded, got %v", a.PerformedSteps)
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a := model.NewAnalysis("metadata.csv")
		err := p.Execute(ctx, a)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not run after cancellation")
		}
	})
}

// TestPipelineWithLogger tests that steps are logged.
func TestPipelineWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithLogger(logger))
	p.AddStep(&mockStep{name: "logged-step"})

	if err := p.Execute(context.Background(), model.NewAnalysis("metadata.csv")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "executing step") || !strings.Contains(out, "logged-step") {
		t.Errorf("expected step to be logged, got %q", out)
	}
	if !strings.Contains(out, "step completed") {
		t.Errorf("expected completion to be logged, got %q", out)
	}
}
