package common

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are dropped when keywords are derived from question text. They
// are never removed from queries, so explicit keywords may still use them.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"do": true, "does": true, "did": true, "to": true, "of": true, "in": true,
	"on": true, "for": true, "and": true, "or": true, "my": true, "i": true,
	"me": true, "you": true, "your": true, "it": true, "how": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "can": true,
	"with": true, "at": true, "by": true, "be": true, "we": true, "our": true,
}

// Normalize lowercases s, strips punctuation and symbols, and splits on
// whitespace. Token order and duplicates are preserved.
func Normalize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Fields(b.String())
}

// TokenSet returns the distinct normalized tokens of s.
func TokenSet(s string) map[string]struct{} {
	tokens := Normalize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Keywords normalizes raw keyword strings into a sorted, deduplicated list.
// A raw value holding several words contributes each word.
func Keywords(raw []string) []string {
	seen := make(map[string]struct{})
	for _, k := range raw {
		for _, t := range Normalize(k) {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DeriveKeywords builds keywords from question text, minus stopwords.
func DeriveKeywords(question string) []string {
	seen := make(map[string]struct{})
	for _, t := range Normalize(question) {
		if stopwords[t] {
			continue
		}
		seen[t] = struct{}{}
	}
	return sortedKeys(seen)
}

// ContainsPhrase reports whether the token sequence phrase occurs
// contiguously in tokens.
func ContainsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
