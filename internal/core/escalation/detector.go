package escalation

import (
	"strings"

	"github.com/agenthands/faqdesk/internal/core/common"
)

// Detector flags queries that should go to a human. It holds only
// configuration and is safe for concurrent use.
type Detector struct {
	terms      [][]string
	hedges     [][]string
	tokenLimit int
}

// NewDetector normalizes terms the same way queries are normalized, so "can't"
// in configuration matches "cant" in a query. Multi-word terms match as
// contiguous phrases. tokenLimit <= 0 disables the complexity rule.
func NewDetector(terms []string, tokenLimit int, hedges []string) *Detector {
	return &Detector{
		terms:      phrases(terms),
		hedges:     phrases(hedges),
		tokenLimit: tokenLimit,
	}
}

func phrases(raw []string) [][]string {
	out := make([][]string, 0, len(raw))
	for _, r := range raw {
		if p := common.Normalize(r); len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Keyword reports whether query contains an escalation term and which one.
func (d *Detector) Keyword(query string) (bool, string) {
	return firstPhrase(common.Normalize(query), d.terms)
}

// Complexity reports whether a long query matched no FAQ keywords at all.
func (d *Detector) Complexity(tokenCount int, score float64) bool {
	if d.tokenLimit <= 0 {
		return false
	}
	return tokenCount > d.tokenLimit && score == 0
}

// Hedge reports whether a model answer signals the model is unsure.
func (d *Detector) Hedge(answer string) (bool, string) {
	return firstPhrase(common.Normalize(answer), d.hedges)
}

func firstPhrase(tokens []string, list [][]string) (bool, string) {
	for _, p := range list {
		if common.ContainsPhrase(tokens, p) {
			return true, strings.Join(p, " ")
		}
	}
	return false, ""
}
