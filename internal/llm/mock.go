package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON is a MockResponse whose content is v encoded as JSON.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b}
}

// MockProvider serves queued responses first-in first-out and records
// every request. Once the queue is empty it asks Respond, and without
// Respond it reports the provider as unavailable. It backs tests and the
// "mock" provider setting.
type MockProvider struct {
	// Respond answers requests after the queue runs dry. Optional.
	Respond func(Request) MockResponse

	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider creates a MockProvider with the given queued responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var resp MockResponse
	switch {
	case len(m.queue) > 0:
		resp = m.queue[0]
		m.queue = m.queue[1:]
	case m.Respond != nil:
		resp = m.Respond(req)
	default:
		resp = MockResponse{Err: &ErrProviderUnavailable{}}
	}
	m.mu.Unlock()

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Usage == (Usage{}) {
		resp.Usage = estimateUsage(req, resp.Content)
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// estimateUsage approximates token counts at four bytes per token so the
// usage reports have something to add up.
func estimateUsage(req Request, out json.RawMessage) Usage {
	in := len(req.System)
	for _, msg := range req.Messages {
		in += len(msg.Content)
	}
	u := Usage{InputTokens: (in + 3) / 4, OutputTokens: (len(out) + 3) / 4}
	u.TotalTokens = u.InputTokens + u.OutputTokens
	return u
}
