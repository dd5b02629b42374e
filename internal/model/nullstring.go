package model

import "encoding/json"

// MissingLabel is the display label used for a missing value.
const MissingLabel = "(missing)"

// missingTokens are the cell values read as missing besides the empty cell.
// Matching is exact and case-sensitive, so "Na" or "none" stay values.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a cell value stands for a missing value: an
// empty cell or one of the usual NA markers such as "N/A", "NaN" or "null".
func IsMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := missingTokens[s]
	return ok
}

// NullString is a text cell that may be missing.
// Blank cells and NA markers (see IsMissing) are missing.
type NullString struct {
	String string
	Valid  bool
}

// NewNullString returns a valid NullString unless s is missing.
func NewNullString(s string) NullString {
	if IsMissing(s) {
		return NullString{}
	}
	return NullString{String: s, Valid: true}
}

// Text returns the value, or an empty string when missing.
func (n NullString) Text() string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// Label returns the value, or MissingLabel when missing.
func (n NullString) Label() string {
	if !n.Valid {
		return MissingLabel
	}
	return n.String
}

// MarshalJSON encodes a missing value as null.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// UnmarshalJSON decodes null as a missing value.
func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NullString{String: s, Valid: true}
	return nil
}
