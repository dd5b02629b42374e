package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no metadata file is specified.
	ErrNoInput = errors.New("no input specified: provide a CSV path")

	// ErrEmptyColumn is returned when a column role maps to an empty name.
	ErrEmptyColumn = errors.New("invalid columns: every role needs a column name")

	// ErrDuplicateColumn is returned when two roles map to the same column.
	ErrDuplicateColumn = errors.New("invalid columns: roles must use distinct columns")

	// ErrInvalidTopJournals is returned when the journal ranking size is not positive.
	ErrInvalidTopJournals = errors.New("invalid top journals: must be positive")

	// ErrInvalidMaxWords is returned when the word cloud cap is not positive.
	ErrInvalidMaxWords = errors.New("invalid max words: must be positive")

	// ErrInvalidPreviewRows is returned when the dashboard sample size is not positive.
	ErrInvalidPreviewRows = errors.New("invalid preview rows: must be positive")

	// ErrUnknownFormat is returned when the report format is not text, json or markdown.
	ErrUnknownFormat = errors.New("unknown report format: use text, json or markdown")

	// ErrNoListenAddress is returned when the dashboard has no address to bind.
	ErrNoListenAddress = errors.New("no listen address specified")
)
