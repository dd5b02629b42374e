package model

// WordWeight is the frequency of one token in the concatenated titles.
type WordWeight struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// WordCloud maps tokens to the weights used for visual sizing.
// Words are ordered by count descending, then alphabetically.
type WordCloud struct {
	Words []WordWeight `json:"words"`

	// TotalTokens is the number of tokens that survived filtering,
	// including those beyond the word limit.
	TotalTokens int `json:"total_tokens"`
}

// Weight returns the weight of word, or 0 if it is not in the cloud.
func (w *WordCloud) Weight(word string) float64 {
	if w == nil {
		return 0
	}
	for _, ww := range w.Words {
		if ww.Word == word {
			return ww.Weight
		}
	}
	return 0
}

// Len returns the number of distinct words kept.
func (w *WordCloud) Len() int {
	if w == nil {
		return 0
	}
	return len(w.Words)
}
