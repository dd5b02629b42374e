package dataset

import "errors"

var (
	// ErrMissingColumn is returned when a column required by the schema is
	// not present in the header.
	ErrMissingColumn = errors.New("required column not found")

	// ErrParse is returned when the file is not a well-formed delimited file.
	ErrParse = errors.New("malformed delimited file")

	// ErrEmptyDataset is returned when the file has no header row.
	ErrEmptyDataset = errors.New("dataset has no header")
)
