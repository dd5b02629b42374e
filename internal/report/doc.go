// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text summary for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a pie chart
//   - ExploreWriter: Dataset overview (head, shape, column info, describe)
//
// Design decision: We separate report writing from the analysis data
// structures (which are in the model package). This allows adding new
// output formats without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
