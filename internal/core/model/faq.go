package model

// FaqEntry is a curated question/answer pair. Keywords hold normalized,
// deduplicated tokens in sorted order.
type FaqEntry struct {
	Question string   `json:"question" yaml:"question" toml:"question"`
	Answer   string   `json:"answer" yaml:"answer" toml:"answer"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`
}

// MatchResult is the best entry for a query. Entry is nil and Index -1 when
// nothing overlapped.
type MatchResult struct {
	Entry *FaqEntry
	Index int
	Score float64
}

// NoMatch is the zero-overlap result.
func NoMatch() MatchResult {
	return MatchResult{Index: -1}
}
