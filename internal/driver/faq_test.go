package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFAQ(t *testing.T) {
	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"question", "answer", "keywords"},
					Values: []interface{}{"reset password", "Go to settings", []interface{}{"reset", "password"}},
				},
				{
					Keys:   []string{"question", "answer", "keywords"},
					Values: []interface{}{"office hours", "9 to 5", nil},
				},
			},
		},
	}

	entries, err := ListFAQ(context.Background(), mock)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"reset", "password"}, entries[0].Keywords)
	assert.Equal(t, "9 to 5", entries[1].Answer)
	assert.Nil(t, entries[1].Keywords)
	assert.Equal(t, ListFAQQuery, mock.Queries[0])
}

func TestListFAQBadKeywords(t *testing.T) {
	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{Keys: []string{"question", "answer", "keywords"}, Values: []interface{}{"q", "a", []interface{}{int64(3)}}},
			},
		},
	}

	_, err := ListFAQ(context.Background(), mock)
	assert.Error(t, err)
}

func TestListFAQDriverError(t *testing.T) {
	mock := &MockDriver{Err: errors.New("bolt down")}
	_, err := ListFAQ(context.Background(), mock)
	assert.Error(t, err)
}

func TestSaveFAQ(t *testing.T) {
	mock := &MockDriver{}
	entries := []model.FaqEntry{
		{Question: "a", Answer: "1", Keywords: []string{"a"}},
		{Question: "b", Answer: "2"},
	}

	require.NoError(t, SaveFAQ(context.Background(), mock, entries))

	require.Len(t, mock.Queries, 3)
	assert.Equal(t, SaveFAQQuery, mock.Queries[0])
	assert.Equal(t, 1, mock.Params[1]["position"])
	assert.Equal(t, DeleteFAQFromQuery, mock.Queries[2])
	assert.Equal(t, 2, mock.Params[2]["position"])
}
