package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cordexplorer/internal/model"
)

const sampleCSV = `cord_uid,title,journal,publish_time,source_x,doi
a1,COVID-19 study,Lancet,2020-03-15,PMC,10.1/a
a2,Bat coronavirus,,2019-11-02,Medline,10.1/b
a3,SARS outbreak review,Virology,not a date,PMC,10.1/c
a4,Masks in schools,Lancet,2021,WHO,10.1/d
a5,Untimed paper,BMJ,,PMC,10.1/e
`

// writeCSV writes content to a temporary file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads every data row", func(t *testing.T) {
		t.Parallel()

		ds, err := Load(writeCSV(t, sampleCSV))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 5 {
			t.Fatalf("expected 5 records, got %d", ds.Len())
		}
		if len(ds.Columns) != 6 {
			t.Errorf("expected 6 columns, got %d", len(ds.Columns))
		}

		second := ds.Records[1]
		if second.Journal.Valid {
			t.Error("expected empty journal to be missing")
		}
		if second.Source.String != "Medline" {
			t.Errorf("unexpected source: %q", second.Source.String)
		}
		if got := ds.Value(1, "doi"); got != "10.1/b" {
			t.Errorf("expected passthrough doi, got %q", got)
		}
	})

	t.Run("missing file wraps fs.ErrNotExist", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("missing role column", func(t *testing.T) {
		t.Parallel()

		_, err := LoadReader(strings.NewReader("title,journal\nA,B\n"), "x.csv")
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("too many fields is a parse error", func(t *testing.T) {
		t.Parallel()

		input := "title,journal,publish_time,source_x\nA,B,2020,PMC,extra\n"
		_, err := LoadReader(strings.NewReader(input), "x.csv")
		if !errors.Is(err, ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("short rows are padded", func(t *testing.T) {
		t.Parallel()

		input := "title,journal,publish_time,source_x\nA,B\n"
		ds, err := LoadReader(strings.NewReader(input), "x.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Records[0].Source.Valid {
			t.Error("expected padded source to be missing")
		}
	})

	t.Run("NA markers are missing", func(t *testing.T) {
		t.Parallel()

		content := "title,journal,publish_time,source_x\nnan,N/A,2020,NULL\nNA study,Lancet,2020,PMC\n"
		ds, err := LoadReader(strings.NewReader(content), "x.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first := ds.Records[0]
		if first.Title.Valid || first.Journal.Valid || first.Source.Valid {
			t.Errorf("expected NA markers to be missing, got %+v", first)
		}
		if got := ds.Records[1].Title.Text(); got != "NA study" {
			t.Errorf("expected marker inside a value to be kept, got %q", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := LoadReader(strings.NewReader(""), "x.csv")
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("expected ErrEmptyDataset, got %v", err)
		}
	})

	t.Run("strips BOM and honours schema and delimiter", func(t *testing.T) {
		t.Parallel()

		input := "\ufeffname;venue;date;origin\nA;J;2020-01-01;S\n"
		ds, err := LoadReader(strings.NewReader(input), "x.csv",
			WithDelimiter(';'),
			WithSchema(model.Schema{
				Title:       "name",
				Journal:     "venue",
				PublishTime: "date",
				Source:      "origin",
			}),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Columns[0] != "name" {
			t.Errorf("expected BOM to be stripped, got %q", ds.Columns[0])
		}
		if ds.Records[0].Title.String != "A" || ds.Records[0].Journal.String != "J" {
			t.Errorf("unexpected record: %+v", ds.Records[0])
		}
	})
}

func TestClean(t *testing.T) {
	t.Parallel()

	t.Run("drops unparseable rows and derives year", func(t *testing.T) {
		t.Parallel()

		ds, err := LoadReader(strings.NewReader(sampleCSV), "x.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := Clean(ds)

		if result.Before != 5 || result.After != 3 || result.Dropped != 2 {
			t.Errorf("unexpected result: %+v", result)
		}
		if ds.Len() != 3 {
			t.Fatalf("expected 3 rows, got %d", ds.Len())
		}
		for _, rec := range ds.Records {
			if rec.PublishTimeRaw == "not a date" || rec.PublishTimeRaw == "" {
				t.Errorf("row %d should have been dropped", rec.Row)
			}
			if rec.PublishTime.IsZero() {
				t.Errorf("row %d has no parsed time", rec.Row)
			}
			if rec.PublishYear != rec.PublishTime.Year() {
				t.Errorf("row %d: year %d != %d", rec.Row, rec.PublishYear, rec.PublishTime.Year())
			}
		}

		wantYears := []int{2020, 2019, 2021}
		for i, want := range wantYears {
			if ds.Records[i].PublishYear != want {
				t.Errorf("record %d: expected year %d, got %d", i, want, ds.Records[i].PublishYear)
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		ds, err := LoadReader(strings.NewReader(sampleCSV), "x.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		Clean(ds)
		second := Clean(ds)

		if second.Dropped != 0 {
			t.Errorf("expected nothing dropped on second pass, got %d", second.Dropped)
		}
		count := 0
		for _, c := range ds.Columns {
			if c == model.PublishYearColumn {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected publish_year once, got %d", count)
		}
		if got := ds.Value(0, model.PublishYearColumn); got != "2020" {
			t.Errorf("expected derived year 2020, got %q", got)
		}
	})
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantOK   bool
		wantYear int
	}{
		{name: "iso date", value: "2020-03-15", wantOK: true, wantYear: 2020},
		{name: "year only", value: "2021", wantOK: true, wantYear: 2021},
		{name: "datetime", value: "2019-12-31 23:59:59", wantOK: true, wantYear: 2019},
		{name: "slash date", value: "3/15/2020", wantOK: true, wantYear: 2020},
		{name: "empty", value: "", wantOK: false},
		{name: "garbage", value: "not a date", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseTime(tt.value, time.UTC)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && got.Year() != tt.wantYear {
				t.Errorf("ParseTime(%q) year = %d, want %d", tt.value, got.Year(), tt.wantYear)
			}
		})
	}
}
