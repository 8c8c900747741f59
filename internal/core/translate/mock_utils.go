package translate

import (
	"context"
	"sync"
)

// MockLLM returns queued responses in order, falling back to Response once
// the queue drains. Err, when set, fails every call.
type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error

	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}
