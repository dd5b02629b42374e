package model

import (
	"encoding/json"
	"testing"
)

func TestNullString(t *testing.T) {
	t.Parallel()

	t.Run("empty string is missing", func(t *testing.T) {
		t.Parallel()

		n := NewNullString("")
		if n.Valid {
			t.Error("expected missing value")
		}
		if n.Label() != MissingLabel {
			t.Errorf("expected %q, got %q", MissingLabel, n.Label())
		}
		if n.Text() != "" {
			t.Errorf("expected empty text, got %q", n.Text())
		}
	})

	t.Run("NA markers are missing", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			value string
			want  bool
		}{
			{value: "", want: true},
			{value: "NA", want: true},
			{value: "N/A", want: true},
			{value: "NaN", want: true},
			{value: "nan", want: true},
			{value: "null", want: true},
			{value: "None", want: true},
			{value: "none", want: false},
			{value: "Lancet", want: false},
			{value: "NA study", want: false},
		}
		for _, tt := range tests {
			if got := IsMissing(tt.value); got != tt.want {
				t.Errorf("IsMissing(%q) = %v, want %v", tt.value, got, tt.want)
			}
			if got := NewNullString(tt.value).Valid; got == tt.want {
				t.Errorf("NewNullString(%q).Valid = %v, want %v", tt.value, got, !tt.want)
			}
		}
	})

	t.Run("json round trip keeps null", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal([]NullString{NewNullString("Lancet"), {}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `["Lancet",null]` {
			t.Errorf("unexpected json: %s", data)
		}

		var got []NullString
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got[0].Valid || got[0].String != "Lancet" || got[1].Valid {
			t.Errorf("unexpected decode: %+v", got)
		}
	})
}

func TestDatasetValue(t *testing.T) {
	t.Parallel()

	ds := &Dataset{
		Columns: []string{"title", "doi"},
		Records: []Record{
			{Row: 1, Cells: []string{"A", "10.1/a"}, PublishYear: 2020},
			{Row: 2, Cells: []string{"B", "10.1/b"}, PublishYear: 2019},
		},
	}

	if got := ds.Value(1, "doi"); got != "10.1/b" {
		t.Errorf("expected passthrough value, got %q", got)
	}
	if got := ds.Value(0, "unknown"); got != "" {
		t.Errorf("expected empty value for unknown column, got %q", got)
	}
	if got := ds.Value(5, "title"); got != "" {
		t.Errorf("expected empty value for out of range row, got %q", got)
	}

	ds.Columns = append(ds.Columns, PublishYearColumn)
	ds.Cleaned = true
	if got := ds.Value(0, PublishYearColumn); got != "2020" {
		t.Errorf("expected derived year, got %q", got)
	}
	if row := ds.Row(1); len(row) != 3 || row[2] != "2019" {
		t.Errorf("unexpected row: %v", row)
	}
	if head := ds.Head(10); len(head) != 2 {
		t.Errorf("expected head to be capped at 2, got %d", len(head))
	}
}

func TestSummaryHelpers(t *testing.T) {
	t.Parallel()

	entries := []CountEntry{
		{Label: NewNullString("PMC"), Count: 3},
		{Label: NullString{}, Count: 2},
	}
	if Total(entries) != 5 {
		t.Errorf("expected total 5, got %d", Total(entries))
	}
	labels := Labels(entries)
	if labels[0] != "PMC" || labels[1] != MissingLabel {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestSchemaMerge(t *testing.T) {
	t.Parallel()

	s := Schema{Source: "source"}.Merge(DefaultSchema())
	if s.Source != "source" {
		t.Errorf("expected override to win, got %q", s.Source)
	}
	if s.Title != "title" || s.PublishTime != "publish_time" {
		t.Errorf("expected defaults to fill gaps, got %+v", s)
	}
}
