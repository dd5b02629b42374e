package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/cordexplorer/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// includeDataset keeps the cleaned records in the output.
	includeDataset bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithDataset includes every cleaned record in the output. Without it only
// the counts, summary and word cloud are written, which keeps reports for
// the full metadata file small.
func WithDataset() JSONWriterOption {
	return func(w *JSONWriter) {
		w.includeDataset = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in JSON format.
func (w *JSONWriter) Write(a *model.Analysis) (int, error) {
	return w.writeJSON(w.view(a))
}

// view returns the analysis as it should be serialized.
func (w *JSONWriter) view(a *model.Analysis) *model.Analysis {
	if w.includeDataset || a.Dataset == nil {
		return a
	}
	shallow := *a
	shallow.Dataset = nil
	return &shallow
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps an analysis with the tool version and chart files.
//
// Design decision: We wrap the analysis rather than adding fields to
// model.Analysis because these are output-specific.
type JSONReport struct {
	// Version is the cordexplorer version that generated this report.
	Version string `json:"version"`

	// Analysis is the full run.
	Analysis *model.Analysis `json:"analysis"`

	// Charts lists the chart images written by the run.
	Charts []string `json:"charts,omitempty"`
}

// FullJSONWriter outputs complete reports with metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	version string
	charts  []string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, charts []string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
		charts:     charts,
	}
}

// Write outputs the analysis wrapped with metadata.
func (w *FullJSONWriter) Write(a *model.Analysis) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:  w.version,
		Analysis: w.view(a),
		Charts:   w.charts,
	})
}
