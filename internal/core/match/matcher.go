package match

import (
	"github.com/agenthands/faqdesk/internal/core/common"
	"github.com/agenthands/faqdesk/internal/core/model"
)

// TieBreak chooses between entries with equal scores.
type TieBreak string

const (
	// TieFirst keeps the earliest entry in store order.
	TieFirst TieBreak = "first"
	// TieMostKeywords prefers the entry with more keywords, then store order.
	TieMostKeywords TieBreak = "most_keywords"
)

type Matcher struct {
	TieBreak TieBreak
}

func NewMatcher(tb TieBreak) *Matcher {
	if tb == "" {
		tb = TieFirst
	}
	return &Matcher{TieBreak: tb}
}

// Match scores query against every entry by keyword overlap:
// |query tokens ∩ keywords| / |keywords|. Entries without keywords are skipped.
func (m *Matcher) Match(query string, entries []model.FaqEntry) model.MatchResult {
	tokens := common.TokenSet(query)
	if len(tokens) == 0 {
		return model.NoMatch()
	}

	best := model.NoMatch()
	for i := range entries {
		kw := entries[i].Keywords
		if len(kw) == 0 {
			continue
		}

		hits := 0
		for _, k := range kw {
			if _, ok := tokens[k]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		score := float64(hits) / float64(len(kw))
		if m.better(score, len(kw), best) {
			best = model.MatchResult{Entry: &entries[i], Index: i, Score: score}
		}
	}
	return best
}

func (m *Matcher) better(score float64, keywords int, best model.MatchResult) bool {
	if score > best.Score {
		return true
	}
	if score < best.Score || best.Entry == nil {
		return false
	}
	return m.TieBreak == TieMostKeywords && keywords > len(best.Entry.Keywords)
}
