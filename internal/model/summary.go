package model

// DefaultTopJournals is how many journals the top-journals summary keeps.
const DefaultTopJournals = 10

// CountEntry is one group of a grouped count.
type CountEntry struct {
	// Label is the group key. A missing key forms its own group.
	Label NullString `json:"label"`

	// Count is the number of records in the group.
	Count int `json:"count"`
}

// Summary holds the three grouped counts derived from a cleaned Dataset.
type Summary struct {
	// YearCounts is ordered by year ascending.
	// Only years present in the data appear.
	YearCounts []CountEntry `json:"year_counts"`

	// TopJournals holds at most DefaultTopJournals entries (or the configured
	// limit), ordered by count descending. Ties keep first-seen order.
	TopJournals []CountEntry `json:"top_journals"`

	// SourceCounts holds every source, ordered by count descending.
	SourceCounts []CountEntry `json:"source_counts"`
}

// Total returns the sum of all counts in entries.
func Total(entries []CountEntry) int {
	var n int
	for _, e := range entries {
		n += e.Count
	}
	return n
}

// Labels returns the display labels of entries.
func Labels(entries []CountEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label.Label()
	}
	return out
}

// Counts returns the counts of entries.
func Counts(entries []CountEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Count
	}
	return out
}
