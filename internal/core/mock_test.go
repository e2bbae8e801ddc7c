package core

import (
	"context"
	"errors"
	"sync"

	"github.com/agenthands/faqdesk/internal/core/model"
)

type MockCompleter struct {
	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

type recorded struct {
	Query    string
	Decision model.Decision
}

type MockRecorder struct {
	mu      sync.Mutex
	Entries []recorded
	Err     error
}

func (m *MockRecorder) Record(ctx context.Context, query string, d model.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, recorded{Query: query, Decision: d})
	return nil
}

var errModelDown = errors.New("model down")
