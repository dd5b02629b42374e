package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Chart titles and axis labels.
const (
	YearTitle    = "Number of Publications by Year"
	JournalTitle = "Top 10 Publishing Journals"
	SourceTitle  = "Distribution of Papers by Source"

	axisPapers = "Number of Papers"
)

// Bar colors.
var (
	// DefaultBarColor is the matplotlib default blue.
	DefaultBarColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

	// SkyBlue fills the journal bars.
	SkyBlue = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}

	// LightCoral fills the source bars.
	LightCoral = color.RGBA{R: 0xf0, G: 0x80, B: 0x80, A: 0xff}
)

// ErrNoData is returned when a chart has no groups to draw.
var ErrNoData = errors.New("chart has no data")

// barSpec describes one bar chart.
type barSpec struct {
	title      string
	xLabel     string
	yLabel     string
	color      color.Color
	horizontal bool
	rotate     bool
}

// maxYearTicks bounds the number of labeled ticks on the year axis.
const maxYearTicks = 20

// YearChart draws publications per year as vertical bars on a numeric year
// axis, so years without papers leave a gap. Year ticks are rotated and the
// horizontal grid is dashed.
func YearChart(entries []model.CountEntry) (*plot.Plot, error) {
	first, counts, err := YearSeries(entries)
	if err != nil {
		return nil, err
	}

	spec := barSpec{
		title:  YearTitle,
		xLabel: "Publication Year",
		yLabel: axisPapers,
		color:  DefaultBarColor,
		rotate: true,
	}
	values := make(plotter.Values, len(counts))
	for i, n := range counts {
		values[i] = float64(n)
	}

	p := newBarPlot(spec)
	bars, err := newBars(values, spec)
	if err != nil {
		return nil, err
	}
	bars.XMin = float64(first)
	p.Add(bars)

	p.X.Min = float64(first) - 0.5
	p.X.Max = float64(first+len(counts)-1) + 0.5
	p.X.Tick.Marker = yearTicks{}
	p.Y.Min = 0

	return p, nil
}

// YearSeries spreads year counts over every year from the earliest to the
// latest, with zero for years that have no papers. counts[i] belongs to
// year first+i.
func YearSeries(entries []model.CountEntry) (first int, counts []int, err error) {
	if len(entries) == 0 {
		return 0, nil, ErrNoData
	}

	years := make([]int, len(entries))
	last := 0
	for i, e := range entries {
		y, convErr := strconv.Atoi(e.Label.Text())
		if convErr != nil {
			return 0, nil, fmt.Errorf("invalid publication year %q: %w", e.Label.Label(), convErr)
		}
		years[i] = y
		if i == 0 || y < first {
			first = y
		}
		if i == 0 || y > last {
			last = y
		}
	}

	counts = make([]int, last-first+1)
	for i, e := range entries {
		counts[years[i]-first] += e.Count
	}
	return first, counts, nil
}

// yearTicks labels whole years, thinning the labels on long ranges.
type yearTicks struct{}

// Ticks implements plot.Ticker.
func (yearTicks) Ticks(lower, upper float64) []plot.Tick {
	lo, hi := int(math.Ceil(lower)), int(math.Floor(upper))
	if lo > hi {
		return nil
	}

	step := 1
	for _, s := range []int{1, 2, 5, 10, 20, 25, 50, 100} {
		step = s
		if (hi-lo)/s < maxYearTicks {
			break
		}
	}

	ticks := make([]plot.Tick, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		tick := plot.Tick{Value: float64(y)}
		if y%step == 0 {
			tick.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// JournalChart draws the journal ranking as horizontal sky blue bars.
// The first entry sits at the bottom of the axis.
func JournalChart(entries []model.CountEntry) (*plot.Plot, error) {
	return barChart(entries, barSpec{
		title:      JournalTitle,
		xLabel:     axisPapers,
		yLabel:     "Journal",
		color:      SkyBlue,
		horizontal: true,
	})
}

// SourceChart draws papers per source as vertical light coral bars.
func SourceChart(entries []model.CountEntry) (*plot.Plot, error) {
	return barChart(entries, barSpec{
		title:  SourceTitle,
		xLabel: "Source",
		yLabel: axisPapers,
		color:  LightCoral,
		rotate: true,
	})
}

func barChart(entries []model.CountEntry, spec barSpec) (*plot.Plot, error) {
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		labels[i] = e.Label.Label()
	}

	p := newBarPlot(spec)
	bars, err := newBars(values, spec)
	if err != nil {
		return nil, err
	}
	p.Add(bars)

	if spec.horizontal {
		p.NominalY(labels...)
		p.X.Min = 0
	} else {
		p.NominalX(labels...)
		p.Y.Min = 0
	}

	return p, nil
}

// newBarPlot creates a plot with the titles, a dashed value grid and, if
// requested, rotated category ticks.
func newBarPlot(spec barSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.title
	p.X.Label.Text = spec.xLabel
	p.Y.Label.Text = spec.yLabel

	grid := plotter.NewGrid()
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	if spec.horizontal {
		grid.Horizontal.Color = nil
	} else {
		grid.Vertical.Color = nil
	}
	p.Add(grid)

	if spec.rotate {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return p
}

func newBars(values plotter.Values, spec barSpec) (*plotter.BarChart, error) {
	bars, err := plotter.NewBarChart(values, barWidth(len(values)))
	if err != nil {
		return nil, err
	}
	bars.Color = spec.color
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = spec.horizontal
	return bars, nil
}

// barWidth narrows bars as the number of groups grows.
func barWidth(n int) vg.Length {
	w := 360 / float64(n)
	switch {
	case w > 40:
		w = 40
	case w < 3:
		w = 3
	}
	return vg.Points(w)
}
