package llm

import (
	"context"
	"sync"
)

// MockLLMClient replays queued responses and errors in order, then falls
// back to Response/Err.
type MockLLMClient struct {
	mu       sync.Mutex
	Response string
	Err      error
	Queue    []MockReply
	Prompts  []string
	Block    bool // wait for ctx to finish
}

type MockReply struct {
	Text string
	Err  error
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	block := m.Block
	var reply *MockReply
	if len(m.Queue) > 0 {
		r := m.Queue[0]
		m.Queue = m.Queue[1:]
		reply = &r
	}
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if reply != nil {
		return reply.Text, reply.Err
	}
	return m.Response, m.Err
}

func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
