package dedupe

import (
	"strings"

	"github.com/agenthands/faqdesk/internal/core/model"
)

const (
	ReasonSameKeywords = "same_keywords"
	ReasonSameQuestion = "same_question"
)

// ResolveDuplicates reports entries shadowed by an earlier entry. Two entries
// with the same keyword set always score alike, and both tie-break policies
// then keep the earlier one, so the later entry is unreachable. Entries are
// expected to carry normalized keywords, as a faq.Store snapshot does.
func ResolveDuplicates(entries []model.FaqEntry) []model.DuplicatePair {
	var pairs []model.DuplicatePair

	byKeywords := make(map[string]int)
	byQuestion := make(map[string]int)

	for i, e := range entries {
		if len(e.Keywords) > 0 {
			key := strings.Join(e.Keywords, "\x00")
			if first, ok := byKeywords[key]; ok {
				pairs = append(pairs, model.DuplicatePair{Kept: first, Duplicate: i, Reason: ReasonSameKeywords})
				continue
			}
			byKeywords[key] = i
		}

		q := strings.ToLower(strings.TrimSpace(e.Question))
		if q == "" {
			continue
		}
		if first, ok := byQuestion[q]; ok {
			pairs = append(pairs, model.DuplicatePair{Kept: first, Duplicate: i, Reason: ReasonSameQuestion})
			continue
		}
		byQuestion[q] = i
	}

	return pairs
}
