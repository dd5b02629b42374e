package report

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/cordexplorer/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// charts are image paths embedded in the Charts section.
	charts []string

	// topWords is the number of cloud words listed.
	topWords int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithChartFiles embeds the given chart images in the report.
func WithChartFiles(paths ...string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.charts = append(w.charts, paths...)
	}
}

// WithMarkdownTopWords sets how many cloud words are listed.
func WithMarkdownTopWords(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.topWords = n
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		topWords:   DefaultTopWords,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in Markdown format.
func (w *MarkdownWriter) Write(a *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, a)

	if a.Summary != nil {
		w.writeCounts(md, "Publications by Year", "Year", a.Summary.YearCounts)
		w.writeCounts(md, "Top Publishing Journals", "Journal", a.Summary.TopJournals)
		w.writeCounts(md, "Distribution of Papers by Source", "Source", a.Summary.SourceCounts)
		w.writePieChart(md, a.Summary.SourceCounts)
	}

	w.writeWords(md, a.WordCloud)
	w.writeCharts(md)
	w.writeFooter(md, a)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, a *model.Analysis) {
	md.H1("CORD-19 Metadata Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source File", "`" + a.SourcePath + "`"},
			{"Run ID", "`" + a.ID + "`"},
			{"Analyzed At", a.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Rows Loaded", strconv.Itoa(a.RowsLoaded)},
			{"Rows Dropped", strconv.Itoa(a.RowsDropped)},
			{"Rows Kept", strconv.Itoa(a.RowsKept())},
			{"Status", w.getStatusText(a)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, a)
}

// getStatusText returns the status text based on analysis state.
func (w *MarkdownWriter) getStatusText(a *model.Analysis) string {
	if a.ErrorMessage != "" {
		return "❌ Error - " + a.ErrorMessage
	}
	return "✅ Complete"
}

// writeAlert writes an alert describing how much cleaning removed.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, a *model.Analysis) {
	switch {
	case a.ErrorMessage != "":
		md.Cautionf("The analysis stopped early: %s", a.ErrorMessage)
	case a.RowsLoaded > 0 && a.RowsKept() == 0:
		md.Warningf("All %d rows were dropped because no publish_time could be parsed.", a.RowsLoaded)
	case a.RowsDropped > 0:
		md.Importantf("%d of %d rows were dropped because their publish_time could not be parsed.",
			a.RowsDropped, a.RowsLoaded)
	default:
		md.Tip("Every row had a parseable publish_time.")
	}
	md.PlainText("")
}

// writeCounts writes one grouped count as a table.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, title, header string, entries []model.CountEntry) {
	md.H2(title)
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No rows.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, []string{e.Label.Label(), strconv.Itoa(e.Count)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(model.Total(entries)) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{header, "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the source distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, entries []model.CountEntry) {
	if model.Total(entries) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Distribution of Papers by Source"),
		piechart.WithShowData(true),
	)
	for _, e := range entries {
		if e.Count > 0 {
			chart.LabelAndIntValue(e.Label.Label(), uint64(e.Count))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeWords writes the heaviest title words.
func (w *MarkdownWriter) writeWords(md *markdown.Markdown, cloud *model.WordCloud) {
	if cloud == nil || w.topWords <= 0 {
		return
	}

	md.H2("Title Words")
	md.PlainText("")

	if cloud.Len() == 0 {
		md.PlainText("No words.")
		md.PlainText("")
		return
	}

	words := cloud.Words
	if len(words) > w.topWords {
		words = words[:w.topWords]
	}
	rows := make([][]string, len(words))
	for i, word := range words {
		rows[i] = []string{word.Word, strconv.Itoa(word.Count), strconv.FormatFloat(word.Weight, 'f', 3, 64)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Word", "Count", "Weight"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCharts embeds the chart images.
func (w *MarkdownWriter) writeCharts(md *markdown.Markdown) {
	if len(w.charts) == 0 {
		return
	}

	md.H2("Charts")
	md.PlainText("")
	for _, path := range w.charts {
		md.PlainTextf("![%s](%s)", filepath.Base(path), filepath.ToSlash(path))
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, a *model.Analysis) {
	if len(a.PerformedSteps) > 0 {
		md.Details("Performed steps", strings.Join(a.PerformedSteps, " → "))
		md.PlainText("")
	}
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by cordexplorer*")
}
