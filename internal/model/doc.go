// Package model defines the core data structures used throughout cordexplorer.
//
// This package contains the following main types:
//   - Record and Dataset: the loaded paper metadata table
//   - Summary and CountEntry: grouped counts derived from a cleaned Dataset
//   - WordCloud: token frequencies used to size words in a tag cloud
//   - Analysis: the state of a single run, from load to rendering
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The dataset, analysis, chart, report and dashboard packages
// all need these types, so centralizing them prevents import cycles.
package model
