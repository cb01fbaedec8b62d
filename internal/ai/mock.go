package ai

import (
	"context"
	"sync"
)

// MockProvider is a test double for providers.
type MockProvider struct {
	Response  GenerateResponse
	Err       error
	Requests  []GenerateRequest // every request received, in order
	mu        sync.Mutex
	Responder func(req GenerateRequest) (GenerateResponse, error) // overrides Response/Err when set
}

// NewMockProvider creates a MockProvider that returns the given text.
func NewMockProvider(text string) *MockProvider {
	return &MockProvider{Response: GenerateResponse{Text: text}}
}

func (m *MockProvider) Generate(_ context.Context, req GenerateRequest) (GenerateResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	responder := m.Responder
	m.mu.Unlock()

	if responder != nil {
		return responder(req)
	}
	if m.Err != nil {
		return GenerateResponse{}, m.Err
	}
	resp := m.Response
	resp.Model = "mock"
	resp.InputTokens = 10
	resp.OutputTokens = len(resp.Text)
	return resp, nil
}

// LastRequest returns the most recent request, or nil if none was made.
func (m *MockProvider) LastRequest() *GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// Calls returns how many requests were made.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func (m *MockProvider) Models() []ModelInfo {
	return []ModelInfo{
		{ID: "mock", Name: "Mock Model", MaxTokens: 4096, Description: "Test mock"},
	}
}

func (m *MockProvider) HealthCheck(_ context.Context) error {
	return m.Err
}
