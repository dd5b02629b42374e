package model

import (
	"slices"
	"strconv"
	"time"
)

// PublishYearColumn is the name of the column derived by cleaning.
const PublishYearColumn = "publish_year"

// Schema names the columns that play a role in the analysis.
// Every other column in the file is passed through unchanged.
type Schema struct {
	// Title is the free-text paper title column.
	Title string `yaml:"title,omitempty"`

	// Journal is the journal name column. Values may be missing.
	Journal string `yaml:"journal,omitempty"`

	// PublishTime is the textual publication timestamp column.
	PublishTime string `yaml:"publish_time,omitempty"`

	// Source is the source identifier column.
	Source string `yaml:"source,omitempty"`
}

// DefaultSchema returns the column names used by the CORD-19 metadata file.
func DefaultSchema() Schema {
	return Schema{
		Title:       "title",
		Journal:     "journal",
		PublishTime: "publish_time",
		Source:      "source_x",
	}
}

// Merge returns s with empty fields filled from defaults.
func (s Schema) Merge(defaults Schema) Schema {
	if s.Title == "" {
		s.Title = defaults.Title
	}
	if s.Journal == "" {
		s.Journal = defaults.Journal
	}
	if s.PublishTime == "" {
		s.PublishTime = defaults.PublishTime
	}
	if s.Source == "" {
		s.Source = defaults.Source
	}
	return s
}

// Record is one row of the source table.
type Record struct {
	// Row is the 1-based data row number in the source file (header excluded).
	Row int `json:"row"`

	// Title is the paper title.
	Title NullString `json:"title"`

	// Journal is the journal name.
	Journal NullString `json:"journal"`

	// Source is the source identifier (e.g. "PMC", "Medline").
	Source NullString `json:"source"`

	// PublishTimeRaw is the timestamp exactly as it appeared in the file.
	PublishTimeRaw string `json:"publish_time_raw"`

	// PublishTime is the parsed timestamp. Zero until the dataset is cleaned.
	PublishTime time.Time `json:"publish_time"`

	// PublishYear is the calendar year of PublishTime. Zero until cleaned.
	PublishYear int `json:"publish_year"`

	// Cells holds every raw cell, aligned with Dataset.Columns at load time.
	Cells []string `json:"-"`
}

// Dataset is an ordered collection of Records sharing one header.
//
// After cleaning, every Record has a valid PublishTime and PublishYear,
// and Columns ends with PublishYearColumn.
type Dataset struct {
	// Path is where the dataset was loaded from.
	Path string `json:"path"`

	// Columns is the header in file order.
	Columns []string `json:"columns"`

	// Schema is the resolved role mapping.
	Schema Schema `json:"schema"`

	// Records holds the rows in file order.
	Records []Record `json:"-"`

	// Cleaned reports whether the dataset went through cleaning.
	Cleaned bool `json:"cleaned"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// ColumnIndex returns the position of name in Columns, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	return slices.Index(d.Columns, name)
}

// Value returns the cell of record i in the named column.
// The derived publish_year column is served from the typed field.
func (d *Dataset) Value(i int, column string) string {
	if i < 0 || i >= len(d.Records) {
		return ""
	}
	rec := &d.Records[i]
	if column == PublishYearColumn && d.Cleaned {
		return strconv.Itoa(rec.PublishYear)
	}
	idx := d.ColumnIndex(column)
	if idx < 0 || idx >= len(rec.Cells) {
		return ""
	}
	return rec.Cells[idx]
}

// Column returns every value of the named column.
func (d *Dataset) Column(column string) []string {
	out := make([]string, len(d.Records))
	for i := range d.Records {
		out[i] = d.Value(i, column)
	}
	return out
}

// Head returns at most n records from the start of the dataset.
func (d *Dataset) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return d.Records[:n]
}

// Row returns the cells of record i for every column, including derived ones.
func (d *Dataset) Row(i int) []string {
	out := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		out[j] = d.Value(i, c)
	}
	return out
}
