// Package analysis derives the summaries shown by every presenter:
// grouped counts by year, journal and source, and title word frequencies.
//
// Grouping is delegated to the in-memory SQLite engine in the database
// package. Tokenization is delegated to bleve's analysis chain.
package analysis
