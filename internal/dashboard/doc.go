// Package dashboard serves the interactive mode: a single HTML page with
// the four chart sections and a raw data sample, backed by a per-process
// SessionCache so the metadata file is loaded once.
//
// Routes:
//
//	GET  /                      the page
//	GET  /charts/{name}         interactive chart (years, journals, sources, wordcloud)
//	GET  /charts/wordcloud.png  raster word cloud
//	GET  /api/summary           analysis summary as JSON
//	POST /api/reload            drop the cache and load again
//	GET  /healthz               liveness
//	GET  /metrics               Prometheus metrics
package dashboard
