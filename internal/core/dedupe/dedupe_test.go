package dedupe

import (
	"testing"

	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDuplicates(t *testing.T) {
	store := faq.NewStore()
	require.NoError(t, store.Load([]model.FaqEntry{
		{Question: "How do I reset my password?", Answer: "Self-service page"},
		{Question: "Password reset?", Answer: "Ask IT", Keywords: []string{"Reset", "password"}},
		{Question: "How to connect to VPN?", Answer: "Use the client", Keywords: []string{"vpn"}},
		{Question: "how to connect to vpn?", Answer: "Use the other client", Keywords: []string{"vpn", "client"}},
	}))

	pairs := ResolveDuplicates(store.All())

	assert.Equal(t, []model.DuplicatePair{
		{Kept: 0, Duplicate: 1, Reason: ReasonSameKeywords},
		{Kept: 2, Duplicate: 3, Reason: ReasonSameQuestion},
	}, pairs)
}

func TestResolveDuplicatesDefaults(t *testing.T) {
	assert.Empty(t, ResolveDuplicates(faq.Defaults()))
}
