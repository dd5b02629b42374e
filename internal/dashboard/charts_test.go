package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nao1215/cordexplorer/internal/model"
)

func TestChartRenderers(t *testing.T) {
	t.Parallel()

	a := model.NewAnalysis("metadata.csv")
	a.Summary = &model.Summary{
		YearCounts: []model.CountEntry{
			{Label: model.NewNullString("2018"), Count: 1},
			{Label: model.NewNullString("2020"), Count: 3},
		},
	}
	a.WordCloud = &model.WordCloud{
		Words: []model.WordWeight{
			{Word: "covid", Count: 3, Weight: 1},
			{Word: "vaccine", Count: 1, Weight: 1.0 / 3},
		},
	}

	t.Run("word cloud series carries its options", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := chartRenderers[ChartWordCloud](&buf, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"wordCloud", "sizeRange", "covid", "vaccine"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected word cloud page to contain %q", want)
			}
		}
	})

	t.Run("year chart fills missing years", func(t *testing.T) {
		t.Parallel()

		filled := yearEntries(a.Summary.YearCounts)
		labels := model.Labels(filled)
		if strings.Join(labels, ",") != "2018,2019,2020" {
			t.Fatalf("expected contiguous years, got %v", labels)
		}
		if filled[1].Count != 0 || filled[2].Count != 3 {
			t.Errorf("unexpected counts %+v", filled)
		}

		var buf bytes.Buffer
		if err := chartRenderers[ChartYears](&buf, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "2019") {
			t.Error("expected the empty year on the axis")
		}
	})

	t.Run("non-numeric years are kept as is", func(t *testing.T) {
		t.Parallel()

		entries := []model.CountEntry{{Label: model.NewNullString("recent"), Count: 1}}
		if got := yearEntries(entries); len(got) != 1 || got[0].Label.Text() != "recent" {
			t.Errorf("expected entries unchanged, got %+v", got)
		}
	})
}
