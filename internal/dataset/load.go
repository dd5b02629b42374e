package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/cordexplorer/internal/model"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\ufeff"

type loadOptions struct {
	schema    model.Schema
	delimiter rune
}

// LoadOption configures Load and LoadReader.
type LoadOption func(*loadOptions)

// WithSchema sets the role column names. Empty fields fall back to
// model.DefaultSchema.
func WithSchema(schema model.Schema) LoadOption {
	return func(o *loadOptions) {
		o.schema = schema.Merge(model.DefaultSchema())
	}
}

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(r rune) LoadOption {
	return func(o *loadOptions) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// Load reads the delimited file at path into a Dataset.
// A missing file yields an error wrapping fs.ErrNotExist; a malformed file
// yields an error wrapping ErrParse.
func Load(path string, opts ...LoadOption) (*model.Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // Reading a user-provided data file is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return LoadReader(f, path, opts...)
}

// LoadReader reads a delimited table from r. name is recorded as the
// dataset path.
func LoadReader(r io.Reader, name string, opts ...LoadOption) (*model.Dataset, error) {
	o := loadOptions{
		schema:    model.DefaultSchema(),
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	// Row lengths are checked below so short rows can be padded.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyDataset)
		}
		return nil, fmt.Errorf("%s: read header: %w: %w", name, ErrParse, err)
	}
	columns := normalizeHeader(header)

	ds := &model.Dataset{
		Path:    name,
		Columns: columns,
		Schema:  o.schema,
		Records: make([]model.Record, 0, 1024),
	}

	idx, err := resolveSchema(columns, o.schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	for row := 1; ; row++ {
		cells, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: row %d: %w: %w", name, row, ErrParse, err)
		}
		if len(cells) > len(columns) {
			return nil, fmt.Errorf("%s: row %d: %w: expected %d fields, got %d",
				name, row, ErrParse, len(columns), len(cells))
		}
		if len(cells) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, cells)
			cells = padded
		}

		ds.Records = append(ds.Records, model.Record{
			Row:            row,
			Title:          model.NewNullString(strings.TrimSpace(cells[idx.title])),
			Journal:        model.NewNullString(strings.TrimSpace(cells[idx.journal])),
			Source:         model.NewNullString(strings.TrimSpace(cells[idx.source])),
			PublishTimeRaw: strings.TrimSpace(cells[idx.publishTime]),
			Cells:          cells,
		})
	}

	return ds, nil
}

type schemaIndex struct {
	title       int
	journal     int
	publishTime int
	source      int
}

// resolveSchema maps every role column to its header position.
func resolveSchema(columns []string, schema model.Schema) (schemaIndex, error) {
	find := func(name string) (int, error) {
		for i, c := range columns {
			if c == name {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	var (
		idx schemaIndex
		err error
	)
	if idx.title, err = find(schema.Title); err != nil {
		return idx, err
	}
	if idx.journal, err = find(schema.Journal); err != nil {
		return idx, err
	}
	if idx.publishTime, err = find(schema.PublishTime); err != nil {
		return idx, err
	}
	if idx.source, err = find(schema.Source); err != nil {
		return idx, err
	}
	return idx, nil
}

// normalizeHeader trims header names, strips a leading BOM and applies NFC
// so that visually identical column names compare equal.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = norm.NFC.String(strings.TrimSpace(h))
	}
	return out
}
