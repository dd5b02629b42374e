package report

import (
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the
// same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(analysis *model.Analysis) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(analysis *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(analysis)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// fit truncates s to width display cells and pads it on the right.
// Wide runes (CJK titles, emoji) count as two cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

// fitLeft is fit with left padding, for numbers.
func fitLeft(s string, width int) string {
	return runewidth.FillLeft(runewidth.Truncate(s, width, "..."), width)
}

// labelWidth returns the widest label in entries, capped at limit.
func labelWidth(entries []model.CountEntry, minWidth, limit int) int {
	w := minWidth
	for _, e := range entries {
		if n := runewidth.StringWidth(e.Label.Label()); n > w {
			w = n
		}
	}
	if w > limit {
		w = limit
	}
	return w
}
