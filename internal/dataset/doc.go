// Package dataset loads paper metadata files and cleans them for analysis.
//
// Loading reads a delimited file into a model.Dataset. Cleaning coerce-parses
// the publication timestamp column: values that cannot be parsed are treated
// as missing and their rows are removed, and every surviving row gets a
// derived publication year.
package dataset
