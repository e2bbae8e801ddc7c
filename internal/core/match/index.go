package match

import (
	"github.com/agenthands/faqdesk/internal/core/common"
	"github.com/agenthands/faqdesk/internal/core/model"
)

// Index maps each keyword to the entries carrying it, so only entries that
// share at least one token with the query are scored. Results are identical
// to Matcher.Match over the same entries.
type Index struct {
	entries  []model.FaqEntry
	postings map[string][]int
	matcher  *Matcher
}

// BuildIndex snapshots entries. Rebuild after the store is reloaded.
func BuildIndex(entries []model.FaqEntry, tb TieBreak) *Index {
	postings := make(map[string][]int)
	for i, e := range entries {
		for _, k := range e.Keywords {
			postings[k] = append(postings[k], i)
		}
	}
	return &Index{entries: entries, postings: postings, matcher: NewMatcher(tb)}
}

// Covers reports whether x was built from exactly this snapshot. Store
// snapshots are shared slices, so identity of the backing array is enough.
func (x *Index) Covers(entries []model.FaqEntry) bool {
	if len(x.entries) != len(entries) {
		return false
	}
	return len(entries) == 0 || &x.entries[0] == &entries[0]
}

func (x *Index) Match(query string) model.MatchResult {
	tokens := common.TokenSet(query)
	if len(tokens) == 0 {
		return model.NoMatch()
	}

	hits := make(map[int]int)
	for t := range tokens {
		for _, i := range x.postings[t] {
			hits[i]++
		}
	}

	best := model.NoMatch()
	// walk in store order so ties resolve the same way as the linear scan
	for i := range x.entries {
		h, ok := hits[i]
		if !ok {
			continue
		}
		kw := len(x.entries[i].Keywords)
		score := float64(h) / float64(kw)
		if x.matcher.better(score, kw, best) {
			best = model.MatchResult{Entry: &x.entries[i], Index: i, Score: score}
		}
	}
	return best
}
