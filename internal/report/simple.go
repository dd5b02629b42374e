package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/cordexplorer/internal/model"
)

// DefaultTopWords is how many word cloud entries the text report lists.
const DefaultTopWords = 20

// maxLabelWidth bounds the label column of count tables.
const maxLabelWidth = 48

// SimpleWriter outputs a human-readable text summary.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// topWords is the number of words listed from the cloud.
	topWords int

	// verbose adds the performed steps and chart files.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithTopWords sets how many cloud words are listed. Values <= 0 hide the
// section.
func WithTopWords(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.topWords = n
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		topWords:   DefaultTopWords,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in human-readable format.
func (w *SimpleWriter) Write(a *model.Analysis) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, a)

	if a.Summary != nil {
		w.writeCounts(&sb, "PUBLICATIONS BY YEAR", "Year", a.Summary.YearCounts)
		w.writeCounts(&sb, "TOP PUBLISHING JOURNALS", "Journal", a.Summary.TopJournals)
		w.writeCounts(&sb, "PAPERS BY SOURCE", "Source", a.Summary.SourceCounts)
	}

	w.writeWords(&sb, a.WordCloud)
	w.writeFooter(&sb, a)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, a *model.Analysis) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      CORD-19 METADATA SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source File:    %s\n", a.SourcePath))
	sb.WriteString(fmt.Sprintf("Run ID:         %s\n", a.ID))
	sb.WriteString(fmt.Sprintf("Analyzed At:    %s\n", a.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Rows Loaded:    %d\n", a.RowsLoaded))
	sb.WriteString(fmt.Sprintf("Rows Dropped:   %d (unparseable publish_time)\n", a.RowsDropped))
	sb.WriteString(fmt.Sprintf("Rows Kept:      %d\n", a.RowsKept()))

	if a.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:         ERROR - %s\n", a.ErrorMessage))
	} else {
		sb.WriteString("Status:         Complete\n")
	}

	sb.WriteString("\n")
}

// writeCounts writes one grouped count as an aligned two-column table.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, title, header string, entries []model.CountEntry) {
	writeSection(sb, title)

	if len(entries) == 0 {
		sb.WriteString("  No rows\n\n")
		return
	}

	width := labelWidth(entries, len(header), maxLabelWidth)
	sb.WriteString(fmt.Sprintf("  %s  %s\n", fit(header, width), fitLeft("Count", 8)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", fit(e.Label.Label(), width), fitLeft(strconv.Itoa(e.Count), 8)))
	}
	sb.WriteString(fmt.Sprintf("  %s  %s\n\n", fit("Total", width), fitLeft(strconv.Itoa(model.Total(entries)), 8)))
}

// writeWords writes the heaviest words of the title cloud.
func (w *SimpleWriter) writeWords(sb *strings.Builder, cloud *model.WordCloud) {
	if cloud == nil || w.topWords <= 0 {
		return
	}

	writeSection(sb, "TITLE WORDS")

	if cloud.Len() == 0 {
		sb.WriteString("  No words\n\n")
		return
	}

	words := cloud.Words
	if len(words) > w.topWords {
		words = words[:w.topWords]
	}
	for _, word := range words {
		sb.WriteString(fmt.Sprintf("  %s  %s  %.3f\n", fit(word.Word, 24), fitLeft(strconv.Itoa(word.Count), 8), word.Weight))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, a *model.Analysis) {
	if w.verbose {
		writeSection(sb, "STEPS")
		for _, step := range a.PerformedSteps {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", step))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by cordexplorer\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeSection writes a ruled section title.
func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
