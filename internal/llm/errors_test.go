package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		kind      ErrorKind
		transient bool
	}{
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), KindTimeout, true},
		{"empty", ErrEmptyResponse, KindMalformed, false},
		{"openai 500", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, KindUpstream, true},
		{"openai 429", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, KindQuota, false},
		{"openai 401", &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized, Err: errors.New("no")}, KindUpstream, false},
		{"anthropic rate limit", &anthropic.APIError{Type: anthropic.ErrTypeRateLimit}, KindQuota, false},
		{"anthropic overloaded", &anthropic.APIError{Type: anthropic.ErrTypeOverloaded}, KindUpstream, true},
		{"google 503", &googleapi.Error{Code: http.StatusServiceUnavailable}, KindUpstream, true},
		{"gateway timeout", &googleapi.Error{Code: http.StatusGatewayTimeout}, KindTimeout, true},
		{"unknown", errors.New("socket closed"), KindTransport, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			se := Classify(tc.err)
			assert.Equal(t, tc.kind, se.Kind)
			assert.Equal(t, tc.transient, se.Transient())
			assert.ErrorIs(t, se, tc.err)
		})
	}
}

func TestClassifyKeepsServiceError(t *testing.T) {
	orig := &ServiceError{Kind: KindQuota, Err: errors.New("limit")}
	assert.Same(t, orig, Classify(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, Classify(nil))
}
