package escalation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyword(t *testing.T) {
	d := NewDetector([]string{"sue", "fraud", "not working", "can't"}, 0, nil)

	cases := []struct {
		query string
		hit   bool
		term  string
	}{
		{"I want to sue you for fraud", true, "sue"},
		{"This is FRAUD!", true, "fraud"},
		{"my vpn is not working", true, "not working"},
		{"I can't log in", true, "cant"},
		{"working on it, not yet", false, ""},
		{"pursue the issue", false, ""},
		{"", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			hit, term := d.Keyword(tc.query)
			assert.Equal(t, tc.hit, hit)
			assert.Equal(t, tc.term, term)
		})
	}
}

func TestKeywordIgnoresBlankTerms(t *testing.T) {
	d := NewDetector([]string{"", "  ", "!!"}, 0, nil)
	hit, _ := d.Keyword("anything at all")
	assert.False(t, hit)
}

func TestComplexity(t *testing.T) {
	d := NewDetector(nil, 5, nil)

	assert.True(t, d.Complexity(6, 0))
	assert.False(t, d.Complexity(5, 0), "limit itself is not exceeded")
	assert.False(t, d.Complexity(6, 0.1), "any overlap disables the rule")
	assert.False(t, d.Complexity(0, 0))

	off := NewDetector(nil, 0, nil)
	assert.False(t, off.Complexity(1000, 0))
}

func TestHedge(t *testing.T) {
	d := NewDetector(nil, 0, []string{"I'm not sure", "please contact"})

	hit, phrase := d.Hedge("I'm not sure, but maybe restart it.")
	assert.True(t, hit)
	assert.Equal(t, "im not sure", phrase)

	hit, _ = d.Hedge("Restart the router.")
	assert.False(t, hit)

	none := NewDetector(nil, 0, nil)
	hit, _ = none.Hedge("please contact HR")
	assert.False(t, hit)
}
