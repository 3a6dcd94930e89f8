package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/variantlab/genechat/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// ChatFunc is called by Chat if set.
	// If nil, echoes the last user turn.
	ChatFunc func(ctx context.Context, history []ai.Turn) (string, error)

	// TitleFunc is called by Title if set.
	// If nil, returns a fixed mock title.
	TitleFunc func(ctx context.Context, user, assistant string) (string, error)

	mu         sync.Mutex
	chatCount  int
	titleCount int
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via the count methods.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Chat echoes the last user turn, or delegates to ChatFunc when set.
func (m *MockGenerator) Chat(ctx context.Context, history []ai.Turn) (string, error) {
	m.mu.Lock()
	m.chatCount++
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, history)
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return fmt.Sprintf("mock reply to: %s", history[i].Content), nil
		}
	}
	return "mock reply", nil
}

// Title returns a fixed mock title, or delegates to TitleFunc when set.
func (m *MockGenerator) Title(ctx context.Context, user, assistant string) (string, error) {
	m.mu.Lock()
	m.titleCount++
	m.mu.Unlock()

	if m.TitleFunc != nil {
		return m.TitleFunc(ctx, user, assistant)
	}

	return "Mock Conversation Title", nil
}

// ChatCount returns the number of times Chat was called.
func (m *MockGenerator) ChatCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCount
}

// TitleCount returns the number of times Title was called.
func (m *MockGenerator) TitleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.titleCount
}

// Reset clears counters and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatCount = 0
	m.titleCount = 0
	m.ChatFunc = nil
	m.TitleFunc = nil
}
