// Package config provides configuration structures and utilities for
// cordexplorer. It defines the input file and column roles, aggregation
// limits, chart output location, dashboard settings and report preferences.
package config
