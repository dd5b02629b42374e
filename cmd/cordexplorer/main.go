// Package main provides the entry point for the cordexplorer CLI.
//
// cordexplorer summarizes a CORD-19 metadata.csv file. It prints the shape
// of the table, writes static charts with a summary report, or serves an
// interactive dashboard.
//
// Usage:
//
//	cordexplorer explore [metadata.csv]
//	cordexplorer analyze [metadata.csv]
//	cordexplorer serve [metadata.csv]
//
// See --help for all available options.
package main

// main is the entry point for cordexplorer.
func main() {
	Execute()
}
