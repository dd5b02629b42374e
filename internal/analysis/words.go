package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/token/stop"
	unicodetok "github.com/blevesearch/bleve/analysis/tokenizer/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Word cloud defaults.
const (
	// DefaultMaxWords is the number of words kept in the cloud.
	DefaultMaxWords = 200

	// DefaultMinTokenLength drops single-character tokens.
	DefaultMinTokenLength = 2
)

// TitlesText joins every title with a single space. Missing titles
// contribute an empty string.
func TitlesText(ds *model.Dataset) string {
	titles := make([]string, len(ds.Records))
	for i := range ds.Records {
		titles[i] = ds.Records[i].Title.Text()
	}
	return strings.Join(titles, " ")
}

// WordCounter turns free text into word frequencies for a tag cloud.
//
// The chain is: NFKC normalization, unicode word segmentation, lower-casing,
// possessive stripping and English stop word removal. Numeric tokens and
// tokens shorter than the minimum length are discarded.
type WordCounter struct {
	tokenizer analysis.Tokenizer
	filters   []analysis.TokenFilter

	maxWords   int
	minLength  int
	extraStops []string
}

// WordOption configures a WordCounter.
type WordOption func(*WordCounter)

// WithMaxWords caps the number of words kept.
func WithMaxWords(n int) WordOption {
	return func(w *WordCounter) {
		if n > 0 {
			w.maxWords = n
		}
	}
}

// WithMinTokenLength sets the shortest token (in runes) that is counted.
func WithMinTokenLength(n int) WordOption {
	return func(w *WordCounter) {
		if n > 0 {
			w.minLength = n
		}
	}
}

// WithExtraStopWords adds words to the English stop list.
func WithExtraStopWords(words ...string) WordOption {
	return func(w *WordCounter) {
		w.extraStops = append(w.extraStops, words...)
	}
}

// NewWordCounter creates a WordCounter.
func NewWordCounter(opts ...WordOption) (*WordCounter, error) {
	w := &WordCounter{
		tokenizer: unicodetok.NewUnicodeTokenizer(),
		maxWords:  DefaultMaxWords,
		minLength: DefaultMinTokenLength,
	}
	for _, opt := range opts {
		opt(w)
	}

	stopWords := analysis.NewTokenMap()
	if err := stopWords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}
	for _, s := range w.extraStops {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			stopWords.AddToken(s)
		}
	}

	w.filters = []analysis.TokenFilter{
		lowercase.NewLowerCaseFilter(),
		en.NewPossessiveFilter(),
		stop.NewStopTokensFilter(stopWords),
	}
	return w, nil
}

// Count computes word frequencies of text. Weights are counts divided by
// the largest count, so the most frequent word has weight 1.
func (w *WordCounter) Count(text string) *model.WordCloud {
	stream := w.tokenizer.Tokenize([]byte(norm.NFKC.String(text)))
	for _, f := range w.filters {
		stream = f.Filter(stream)
	}

	counts := make(map[string]int)
	cloud := &model.WordCloud{Words: make([]model.WordWeight, 0)}
	for _, tok := range stream {
		if tok.Type == analysis.Numeric || isNumeric(tok.Term) {
			continue
		}
		term := string(tok.Term)
		if utf8.RuneCountInString(term) < w.minLength {
			continue
		}
		counts[term]++
		cloud.TotalTokens++
	}
	if len(counts) == 0 {
		return cloud
	}

	for word, n := range counts {
		cloud.Words = append(cloud.Words, model.WordWeight{Word: word, Count: n})
	}
	slices.SortFunc(cloud.Words, func(a, b model.WordWeight) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	if len(cloud.Words) > w.maxWords {
		cloud.Words = cloud.Words[:w.maxWords]
	}

	top := float64(cloud.Words[0].Count)
	for i := range cloud.Words {
		cloud.Words[i].Weight = float64(cloud.Words[i].Count) / top
	}
	return cloud
}

func isNumeric(term []byte) bool {
	for _, r := range string(term) {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return len(term) > 0
}
