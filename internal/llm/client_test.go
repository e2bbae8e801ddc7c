package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agenthands/faqdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, path string, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const chatCompletion = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"model": "gpt-4o-mini",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Use the HR portal."}, "finish_reason": "stop"}]
}`

func TestOpenAIClientGenerate(t *testing.T) {
	var req map[string]any
	srv := openAIServer(t, "/chat/completions", http.StatusOK, chatCompletion, &req)

	c := NewOpenAIClient("key", "gpt-4o-mini", srv.URL, "be brief", 100)
	out, err := c.Generate(context.Background(), "how do I apply for leave")

	require.NoError(t, err)
	assert.Equal(t, "Use the HR portal.", out)

	msgs, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "be brief", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestOpenAIClientServerError(t *testing.T) {
	srv := openAIServer(t, "/chat/completions", http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`, nil)

	c := NewOpenAIClient("key", "gpt-4o-mini", srv.URL, "", 0)
	_, err := c.Generate(context.Background(), "q")

	require.Error(t, err)
	se := Classify(err)
	assert.Equal(t, KindUpstream, se.Kind)
	assert.True(t, se.Transient())
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := openAIServer(t, "/chat/completions", http.StatusOK, `{"id": "x", "choices": []}`, nil)

	c := NewOpenAIClient("key", "m", srv.URL, "", 0)
	_, err := c.Generate(context.Background(), "q")

	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestClaudeClientGenerate(t *testing.T) {
	var req map[string]any
	srv := openAIServer(t, "/messages", http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-5-haiku-latest",
		"content": [{"type": "text", "text": "Office hours are 9:30 to 6:30."}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 8}
	}`, &req)

	c := NewClaudeClient("key", "claude-3-5-haiku-latest", srv.URL, "be brief", 0)
	out, err := c.Generate(context.Background(), "office hours?")

	require.NoError(t, err)
	assert.Equal(t, "Office hours are 9:30 to 6:30.", out)
	assert.Equal(t, "be brief", req["system"])
}

func TestClaudeClientOverloaded(t *testing.T) {
	srv := openAIServer(t, "/messages", 529,
		`{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`, nil)

	c := NewClaudeClient("key", "claude-3-5-haiku-latest", srv.URL, "", 0)
	_, err := c.Generate(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, Classify(err).Transient())
}

func TestNewClientOllamaUsesV1(t *testing.T) {
	srv := openAIServer(t, "/v1/chat/completions", http.StatusOK, chatCompletion, nil)

	c, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "ollama",
		Model:    "gpt-oss:latest",
		BaseURL:  srv.URL + "/",
	})
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Use the HR portal.", out)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "eliza"})
	assert.Error(t, err)
}
