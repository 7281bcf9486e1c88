package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// responses in FIFO order and records every prompt it was given.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response. An exhausted queue keeps
// returning the last response so tests don't have to count calls exactly.
func (m *MockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.responses) == 0 {
		return "", errors.New("mock provider: no responses configured")
	}

	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}

	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
