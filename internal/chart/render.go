package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Output file names.
const (
	YearFile      = "publications_by_year.png"
	JournalFile   = "top_journals.png"
	SourceFile    = "source_distribution.png"
	WordCloudFile = "title_wordcloud.png"
)

// Figure sizes, matching 10x6, 12x8 and 10x6 inch figures.
var (
	YearSize    = [2]vg.Length{10 * vg.Inch, 6 * vg.Inch}
	JournalSize = [2]vg.Length{12 * vg.Inch, 8 * vg.Inch}
	SourceSize  = [2]vg.Length{10 * vg.Inch, 6 * vg.Inch}
)

// errIncomplete is returned when the analysis lacks a summary or cloud.
var errIncomplete = errors.New("analysis has no summary or word cloud")

// WritePNG encodes p as PNG of the given size to w.
func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Renderer writes the chart set of an analysis to a directory.
type Renderer struct {
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets a custom logger for the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// figure is one image of the set.
type figure struct {
	file  string
	size  [2]vg.Length
	build func(*model.Analysis) (*plot.Plot, error)
}

var figures = []figure{
	{file: YearFile, size: YearSize, build: func(a *model.Analysis) (*plot.Plot, error) {
		return YearChart(a.Summary.YearCounts)
	}},
	{file: JournalFile, size: JournalSize, build: func(a *model.Analysis) (*plot.Plot, error) {
		return JournalChart(a.Summary.TopJournals)
	}},
	{file: SourceFile, size: SourceSize, build: func(a *model.Analysis) (*plot.Plot, error) {
		return SourceChart(a.Summary.SourceCounts)
	}},
	{file: WordCloudFile, size: [2]vg.Length{WordCloudWidth, WordCloudHeight}, build: func(a *model.Analysis) (*plot.Plot, error) {
		return WordCloudImage(a.WordCloud)
	}},
}

// RenderAll writes the four images into dir, creating it if needed, and
// returns the written paths in order. Bar charts without data are skipped
// with a warning. Cancellation is checked before each image.
func (r *Renderer) RenderAll(ctx context.Context, a *model.Analysis, dir string) ([]string, error) {
	if a.Summary == nil || a.WordCloud == nil {
		return nil, errIncomplete
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	written := make([]string, 0, len(figures))
	for _, f := range figures {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		p, err := f.build(a)
		if errors.Is(err, ErrNoData) {
			r.logger.Warn("chart skipped", "file", f.file, "reason", err)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("%s: %w", f.file, err)
		}

		path := filepath.Join(dir, f.file)
		if err := p.Save(f.size[0], f.size[1], path); err != nil {
			return written, fmt.Errorf("save %s: %w", path, err)
		}
		r.logger.Debug("chart written", "path", path)
		written = append(written, path)
	}
	return written, nil
}
