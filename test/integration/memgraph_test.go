//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/faqdesk/internal/config"
	"github.com/agenthands/faqdesk/internal/core"
	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/agenthands/faqdesk/internal/driver"
	"github.com/agenthands/faqdesk/internal/faqsource"
	"github.com/joho/godotenv"
)

func TestMemgraphFAQSource(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(context.Background())
	require.NoError(t, d.BuildIndices(ctx))

	// put back whatever the instance held before
	previous, err := driver.ListFAQ(ctx, d)
	require.NoError(t, err)
	defer func() {
		if err := driver.SaveFAQ(context.Background(), d, previous); err != nil {
			t.Logf("restore faq nodes: %v", err)
		}
	}()

	src := faqsource.Memgraph{Driver: d}
	require.NoError(t, src.Replace(ctx, faq.Defaults()))

	store := faq.NewStore()
	n, err := faqsource.Populate(ctx, src, store)
	require.NoError(t, err)
	assert.Equal(t, len(faq.Defaults()), n)
	assert.Equal(t, faq.Defaults()[0].Question, store.All()[0].Question)

	r := core.NewResolver(store, nil, config.Default().Resolver, 0)
	d1 := r.Resolve(ctx, "When are the office working hours?")
	assert.Equal(t, model.KindFAQAnswer, d1.Kind)
	assert.Equal(t, model.SourceFAQ, d1.Source)
}
