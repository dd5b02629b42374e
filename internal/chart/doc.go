// Package chart renders the batch-mode images: three bar charts and a
// raster word cloud, drawn with gonum/plot and saved as PNG.
//
// The builders (YearChart, JournalChart, SourceChart, WordCloudImage)
// return a *plot.Plot so callers can write it anywhere; Renderer writes the
// whole set into a directory with fixed file names.
package chart
