package dashboard

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nao1215/cordexplorer/internal/chart"
	"github.com/nao1215/cordexplorer/internal/model"
)

// Interactive chart names, as used in /charts/{name}.
const (
	ChartYears     = "years"
	ChartJournals  = "journals"
	ChartSources   = "sources"
	ChartWordCloud = "wordcloud"
)

const (
	chartWidth  = "900px"
	chartHeight = "500px"
)

// chartRenderer writes one interactive chart as a standalone HTML page.
type chartRenderer func(w io.Writer, a *model.Analysis) error

var chartRenderers = map[string]chartRenderer{
	ChartYears: func(w io.Writer, a *model.Analysis) error {
		return countBar(yearEntries(a.Summary.YearCounts), chart.YearTitle, "Publication Year", "Number of Papers", "#1f77b4", false).Render(w)
	},
	ChartJournals: func(w io.Writer, a *model.Analysis) error {
		return countBar(a.Summary.TopJournals, chart.JournalTitle, "Number of Papers", "Journal", "skyblue", true).Render(w)
	},
	ChartSources: func(w io.Writer, a *model.Analysis) error {
		return countBar(a.Summary.SourceCounts, chart.SourceTitle, "Source", "Number of Papers", "lightcoral", false).Render(w)
	},
	ChartWordCloud: func(w io.Writer, a *model.Analysis) error {
		return wordCloud(a.WordCloud).Render(w)
	},
}

// yearEntries lists every year from the earliest to the latest so that
// years without papers show as empty categories.
func yearEntries(entries []model.CountEntry) []model.CountEntry {
	first, counts, err := chart.YearSeries(entries)
	if err != nil {
		return entries
	}
	filled := make([]model.CountEntry, len(counts))
	for i, n := range counts {
		filled[i] = model.CountEntry{Label: model.NewNullString(strconv.Itoa(first + i)), Count: n}
	}
	return filled
}

// countBar builds a bar chart of grouped counts. When horizontal is set
// the category axis is vertical; xName and yName name the final axes.
func countBar(entries []model.CountEntry, title, xName, yName, color string, horizontal bool) *charts.Bar {
	labels := model.Labels(entries)
	data := make([]opts.BarData, len(entries))
	for i, e := range entries {
		data[i] = opts.BarData{Name: labels[i], Value: e.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	bar.SetXAxis(labels).AddSeries("Papers", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	)
	if horizontal {
		bar.XYReversal()
	}
	return bar
}

// wordCloud builds the interactive word cloud sized by word count.
func wordCloud(cloud *model.WordCloud) *charts.WordCloud {
	data := make([]opts.WordCloudData, 0, cloud.Len())
	if cloud != nil {
		for _, w := range cloud.Words {
			data = append(data, opts.WordCloudData{Name: w.Word, Value: w.Count})
		}
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chart.WordCloudTitle,
			Width:     "800px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: chart.WordCloudTitle}),
	)
	wc.AddSeries("words", data,
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{12, 72},
			Shape:     "circle",
		}),
	)
	return wc
}
