package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/cordexplorer/internal/database"
	"github.com/nao1215/cordexplorer/internal/dataset"
	"github.com/nao1215/cordexplorer/internal/model"
)

// newAggregator creates an Aggregator over a fresh in-memory engine.
func newAggregator(t *testing.T, opts ...AggregatorOption) *Aggregator {
	t.Helper()

	db, err := database.Open(context.Background())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewAggregator(db, opts...)
}

// cleanedDataset loads and cleans csv content.
func cleanedDataset(t *testing.T, content string) *model.Dataset {
	t.Helper()

	ds, err := dataset.LoadReader(strings.NewReader(content), "test.csv")
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	dataset.Clean(ds)
	return ds
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("five rows with two bad timestamps", func(t *testing.T) {
		t.Parallel()

		ds := cleanedDataset(t, `title,journal,publish_time,source_x
COVID-19 study,Lancet,2020-03-15,PMC
Bat coronavirus,,2019-11-02,Medline
SARS review,Virology,not a date,PMC
Masks,Lancet,2020,WHO
Untimed,BMJ,,PMC
`)
		if ds.Len() != 3 {
			t.Fatalf("expected 3 rows after cleaning, got %d", ds.Len())
		}

		summary, err := newAggregator(t).Aggregate(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if model.Total(summary.YearCounts) != 3 {
			t.Errorf("expected year counts to sum to 3, got %d", model.Total(summary.YearCounts))
		}
		if got := model.Labels(summary.YearCounts); strings.Join(got, ",") != "2019,2020" {
			t.Errorf("unexpected year order: %v", got)
		}
		if summary.TopJournals[0].Label.String != "Lancet" || summary.TopJournals[0].Count != 2 {
			t.Errorf("unexpected top journal: %+v", summary.TopJournals[0])
		}
		if summary.TopJournals[1].Label.Valid {
			t.Errorf("expected missing journal group, got %+v", summary.TopJournals[1])
		}
		if model.Total(summary.SourceCounts) != ds.Len() {
			t.Errorf("source total %d != rows %d", model.Total(summary.SourceCounts), ds.Len())
		}
	})

	t.Run("top journals are capped and descending", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("title,journal,publish_time,source_x\n")
		truth := make(map[string]int)
		for j := range 15 {
			name := "J" + string(rune('A'+j))
			for range j + 1 {
				sb.WriteString("t," + name + ",2020-01-01,PMC\n")
				truth[name]++
			}
		}
		ds := cleanedDataset(t, sb.String())

		summary, err := newAggregator(t).Aggregate(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summary.TopJournals) != model.DefaultTopJournals {
			t.Fatalf("expected %d journals, got %d", model.DefaultTopJournals, len(summary.TopJournals))
		}
		for i, e := range summary.TopJournals {
			if e.Count != truth[e.Label.String] {
				t.Errorf("%s: expected %d, got %d", e.Label.String, truth[e.Label.String], e.Count)
			}
			if i > 0 && summary.TopJournals[i-1].Count < e.Count {
				t.Errorf("entry %d breaks descending order", i)
			}
		}
	})

	t.Run("WithTopJournals changes the limit", func(t *testing.T) {
		t.Parallel()

		ds := cleanedDataset(t, "title,journal,publish_time,source_x\nt,A,2020,PMC\nt,B,2020,PMC\nt,C,2020,PMC\n")
		summary, err := newAggregator(t, WithTopJournals(2)).Aggregate(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summary.TopJournals) != 2 {
			t.Errorf("expected 2 journals, got %d", len(summary.TopJournals))
		}
	})

	t.Run("rejects uncleaned datasets", func(t *testing.T) {
		t.Parallel()

		_, err := newAggregator(t).Aggregate(context.Background(), &model.Dataset{})
		if !errors.Is(err, ErrNotCleaned) {
			t.Errorf("expected ErrNotCleaned, got %v", err)
		}
	})
}

func TestTitlesText(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Records: []model.Record{
		{Title: model.NewNullString("COVID-19 study")},
		{Title: model.NewNullString("")},
		{Title: model.NullString{}},
		{Title: model.NewNullString("COVID-19 vaccine")},
	}}

	text := TitlesText(ds)
	if strings.Count(text, "COVID-19") != 2 {
		t.Errorf("expected COVID-19 twice in %q", text)
	}
	if text != "COVID-19 study   COVID-19 vaccine" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestWordCounter(t *testing.T) {
	t.Parallel()

	t.Run("covid ranks above single occurrences", func(t *testing.T) {
		t.Parallel()

		wc, err := NewWordCounter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cloud := wc.Count("COVID-19 study   COVID-19 vaccine")

		covid := cloud.Weight("covid")
		if covid != 1 {
			t.Fatalf("expected covid to have weight 1, got %v", covid)
		}
		for _, w := range cloud.Words {
			if w.Count == 1 && w.Weight > covid {
				t.Errorf("%q outranks covid", w.Word)
			}
		}
		if cloud.Words[0].Word != "covid" {
			t.Errorf("expected covid first, got %q", cloud.Words[0].Word)
		}
		if cloud.Weight("19") != 0 {
			t.Error("expected numeric tokens to be dropped")
		}
	})

	t.Run("stop words and short tokens are filtered", func(t *testing.T) {
		t.Parallel()

		wc, err := NewWordCounter(WithExtraStopWords("Vaccine"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cloud := wc.Count("The effect of a vaccine on the immune x response")

		for _, filtered := range []string{"the", "of", "a", "on", "x", "vaccine"} {
			if cloud.Weight(filtered) != 0 {
				t.Errorf("expected %q to be filtered", filtered)
			}
		}
		for _, kept := range []string{"effect", "immune", "response"} {
			if cloud.Weight(kept) == 0 {
				t.Errorf("expected %q to be kept", kept)
			}
		}
	})

	t.Run("weight is monotonic in frequency", func(t *testing.T) {
		t.Parallel()

		wc, err := NewWordCounter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cloud := wc.Count("virus virus virus cell cell protein")

		for i := 1; i < len(cloud.Words); i++ {
			prev, cur := cloud.Words[i-1], cloud.Words[i]
			if prev.Count < cur.Count || prev.Weight < cur.Weight {
				t.Errorf("order broken between %+v and %+v", prev, cur)
			}
		}
		if cloud.TotalTokens != 6 {
			t.Errorf("expected 6 tokens, got %d", cloud.TotalTokens)
		}
	})

	t.Run("max words caps the cloud", func(t *testing.T) {
		t.Parallel()

		wc, err := NewWordCounter(WithMaxWords(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cloud := wc.Count("alpha beta gamma delta alpha")
		if cloud.Len() != 2 {
			t.Errorf("expected 2 words, got %d", cloud.Len())
		}
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		wc, err := NewWordCounter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cloud := wc.Count("   "); cloud.Len() != 0 {
			t.Errorf("expected empty cloud, got %d words", cloud.Len())
		}
	})
}
