package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Explore defaults.
const (
	// DefaultHeadRows is the number of rows shown in the head table.
	DefaultHeadRows = 5

	// DefaultMaxColumns is the widest table printed before the middle
	// columns are elided.
	DefaultMaxColumns = 10

	// cellWidth is the display width of a table cell.
	cellWidth = 16
)

// ColumnKind is the inferred storage type of a column.
type ColumnKind int

const (
	// KindObject is text.
	KindObject ColumnKind = iota
	// KindInt is a whole-number column without missing values.
	KindInt
	// KindFloat is a numeric column with fractions or missing values.
	KindFloat
)

// String returns the dtype name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "object"
	}
}

// ColumnInfo describes one column of a dataset.
type ColumnInfo struct {
	Name    string
	NonNull int
	Missing int
	Kind    ColumnKind
}

// InspectColumn infers the kind and null counts of a column.
// Blank cells and NA markers are missing. A whole-number column with missing values is
// float64, and a column with no values at all is float64 too.
func InspectColumn(name string, values []string) ColumnInfo {
	info := ColumnInfo{Name: name, Kind: KindInt}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if model.IsMissing(v) {
			info.Missing++
			continue
		}
		info.NonNull++
		switch info.Kind {
		case KindInt:
			if _, err := strconv.ParseInt(v, 10, 64); err == nil {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				info.Kind = KindFloat
				continue
			}
			info.Kind = KindObject
		case KindFloat:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				info.Kind = KindObject
			}
		}
	}
	if info.Kind == KindInt && (info.Missing > 0 || info.NonNull == 0) {
		info.Kind = KindFloat
	}
	return info
}

// NumericSummary is the describe output of one numeric column.
type NumericSummary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// DescribeNumeric computes count, mean, sample standard deviation, min,
// quartiles and max of the parseable values. Statistics of an empty
// column are NaN.
func DescribeNumeric(name string, values []string) NumericSummary {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			continue
		}
		xs = append(xs, f)
	}

	s := NumericSummary{Name: name, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	slices.Sort(xs)
	s.Mean = stat.Mean(xs, nil)
	s.Std = math.NaN()
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	s.Min = xs[0]
	s.Max = xs[len(xs)-1]
	s.Q1 = stat.Quantile(0.25, stat.LinInterp, xs, nil)
	s.Q2 = stat.Quantile(0.5, stat.LinInterp, xs, nil)
	s.Q3 = stat.Quantile(0.75, stat.LinInterp, xs, nil)
	return s
}

// ObjectSummary is the describe output of one text column.
type ObjectSummary struct {
	Name   string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// DescribeObject counts non-missing and distinct values and finds the most
// frequent one. Ties go to the value seen first.
func DescribeObject(name string, values []string) ObjectSummary {
	s := ObjectSummary{Name: name}
	counts := make(map[string]int)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if model.IsMissing(v) {
			continue
		}
		s.Count++
		counts[v]++
		if counts[v] > s.Freq {
			s.Freq = counts[v]
			s.Top = v
		}
	}
	s.Unique = len(counts)
	return s
}

// ExploreWriter prints a dataset overview: head, shape, column info and
// describe statistics.
type ExploreWriter struct {
	baseWriter

	headRows   int
	maxColumns int
}

// ExploreWriterOption configures an ExploreWriter.
type ExploreWriterOption func(*ExploreWriter)

// WithHeadRows sets the number of rows in the head table.
func WithHeadRows(n int) ExploreWriterOption {
	return func(w *ExploreWriter) {
		if n >= 0 {
			w.headRows = n
		}
	}
}

// WithMaxColumns sets the widest table printed in full.
func WithMaxColumns(n int) ExploreWriterOption {
	return func(w *ExploreWriter) {
		if n > 1 {
			w.maxColumns = n
		}
	}
}

// NewExploreWriter creates an ExploreWriter that outputs to the given writer.
func NewExploreWriter(output io.Writer, opts ...ExploreWriterOption) *ExploreWriter {
	w := &ExploreWriter{
		baseWriter: newBaseWriter(output),
		headRows:   DefaultHeadRows,
		maxColumns: DefaultMaxColumns,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the overview of the analysis dataset.
func (w *ExploreWriter) Write(a *model.Analysis) (int, error) {
	ds := a.Dataset
	if ds == nil {
		return 0, fmt.Errorf("%s: no dataset loaded", a.SourcePath)
	}

	var sb strings.Builder

	state := "raw"
	if ds.Cleaned {
		state = "cleaned"
	}
	sb.WriteString(fmt.Sprintf("\nDataset: %s (%s)\n\n", ds.Path, state))

	w.writeHead(&sb, ds)

	writeSection(&sb, "SHAPE")
	sb.WriteString(fmt.Sprintf("  %d rows x %d columns\n", ds.Len(), len(ds.Columns)))
	if ds.Cleaned {
		sb.WriteString(fmt.Sprintf("  %d rows dropped while cleaning\n", a.RowsDropped))
	}
	sb.WriteString("\n")

	infos := w.writeInfo(&sb, ds)
	w.writeDescribe(&sb, ds, infos)

	return w.output.Write([]byte(sb.String()))
}

// visibleColumns returns the column indexes to print, with -1 marking the
// elided middle.
func (w *ExploreWriter) visibleColumns(n int) []int {
	if n <= w.maxColumns {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	left := w.maxColumns / 2
	right := w.maxColumns - left
	idx := make([]int, 0, w.maxColumns+1)
	for i := 0; i < left; i++ {
		idx = append(idx, i)
	}
	idx = append(idx, -1)
	for i := n - right; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

// writeTable writes rows under header with the visible column subset.
func (w *ExploreWriter) writeTable(sb *strings.Builder, index []string, header []string, rows [][]string) {
	cols := w.visibleColumns(len(header))

	line := func(first string, cells []string) {
		sb.WriteString("  ")
		sb.WriteString(fit(first, 8))
		for _, c := range cols {
			sb.WriteString(" | ")
			if c < 0 {
				sb.WriteString("...")
				continue
			}
			sb.WriteString(fit(cells[c], cellWidth))
		}
		sb.WriteString("\n")
	}

	line("", header)
	for i, row := range rows {
		line(index[i], row)
	}
	sb.WriteString("\n")
}

func (w *ExploreWriter) writeHead(sb *strings.Builder, ds *model.Dataset) {
	writeSection(sb, fmt.Sprintf("HEAD (first %d rows)", w.headRows))

	head := ds.Head(w.headRows)
	if len(head) == 0 {
		sb.WriteString("  No rows\n\n")
		return
	}
	index := make([]string, len(head))
	rows := make([][]string, len(head))
	for i := range head {
		index[i] = strconv.Itoa(i)
		rows[i] = ds.Row(i)
	}
	w.writeTable(sb, index, ds.Columns, rows)
}

func (w *ExploreWriter) writeInfo(sb *strings.Builder, ds *model.Dataset) []ColumnInfo {
	writeSection(sb, "COLUMNS")

	infos := make([]ColumnInfo, len(ds.Columns))
	nameWidth := 6
	for i, col := range ds.Columns {
		infos[i] = InspectColumn(col, ds.Column(col))
		if len(col) > nameWidth {
			nameWidth = len(col)
		}
	}
	if nameWidth > maxLabelWidth {
		nameWidth = maxLabelWidth
	}

	sb.WriteString(fmt.Sprintf("  %s  %s  %s  %s  %s\n",
		fitLeft("#", 3), fit("Column", nameWidth), fitLeft("Non-Null", 9), fitLeft("Missing", 9), "Dtype"))
	for i, info := range infos {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s  %s  %s\n",
			fitLeft(strconv.Itoa(i), 3), fit(info.Name, nameWidth),
			fitLeft(strconv.Itoa(info.NonNull), 9), fitLeft(strconv.Itoa(info.Missing), 9), info.Kind))
	}
	sb.WriteString("\n")
	return infos
}

func (w *ExploreWriter) writeDescribe(sb *strings.Builder, ds *model.Dataset, infos []ColumnInfo) {
	writeSection(sb, "DESCRIBE")

	numeric := make([]NumericSummary, 0)
	for _, info := range infos {
		if info.Kind != KindObject {
			numeric = append(numeric, DescribeNumeric(info.Name, ds.Column(info.Name)))
		}
	}

	if len(numeric) > 0 {
		header := make([]string, len(numeric))
		for i, s := range numeric {
			header[i] = s.Name
		}
		labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
		rows := make([][]string, len(labels))
		for r := range rows {
			rows[r] = make([]string, len(numeric))
		}
		for c, s := range numeric {
			values := []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max}
			for r, v := range values {
				rows[r][c] = formatStat(v)
			}
		}
		w.writeTable(sb, labels, header, rows)
		return
	}

	objects := make([]ObjectSummary, len(infos))
	header := make([]string, len(infos))
	for i, info := range infos {
		objects[i] = DescribeObject(info.Name, ds.Column(info.Name))
		header[i] = info.Name
	}
	labels := []string{"count", "unique", "top", "freq"}
	rows := make([][]string, len(labels))
	for r := range rows {
		rows[r] = make([]string, len(objects))
	}
	for c, s := range objects {
		rows[0][c] = strconv.Itoa(s.Count)
		rows[1][c] = strconv.Itoa(s.Unique)
		rows[2][c] = s.Top
		rows[3][c] = strconv.Itoa(s.Freq)
	}
	w.writeTable(sb, labels, header, rows)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
