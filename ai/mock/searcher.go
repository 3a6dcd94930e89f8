package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/variantlab/genechat/ai"
)

// MockSearcher is a test double for ai.Searcher.
// It allows custom behavior injection via function fields and tracks
// concurrency so tests can assert pool bounds.
type MockSearcher struct {
	// SearchFunc is called by Search if set.
	// If nil, returns a canned summary derived from the query.
	SearchFunc func(ctx context.Context, query string) (string, error)

	mu          sync.Mutex
	callCount   int
	inFlight    int
	maxInFlight int
}

// NewMockSearcher creates a mock searcher with default behavior.
// Note: Returns concrete type to allow test assertions via the tracking methods.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{}
}

// Search returns a canned summary, or delegates to SearchFunc when set.
// In-flight tracking wraps the whole call, including injected behavior.
func (m *MockSearcher) Search(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}

	return fmt.Sprintf("mock summary (%d chars)", len(query)), nil
}

// CallCount returns the number of times Search was called.
func (m *MockSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MaxInFlight returns the highest number of simultaneous Search calls observed.
func (m *MockSearcher) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Reset clears counters and custom functions.
func (m *MockSearcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.inFlight = 0
	m.maxInFlight = 0
	m.SearchFunc = nil
}

// ThrottleTimes configures the searcher to reject the first n calls with a
// throttling error carrying retryAfter as the server-suggested delay, then
// succeed with summary.
func (m *MockSearcher) ThrottleTimes(n int, retryAfter time.Duration, summary string) {
	var throttled int
	var mu sync.Mutex
	m.SearchFunc = func(ctx context.Context, query string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if throttled < n {
			throttled++
			return "", &ai.ThrottleError{
				RetryAfter: retryAfter,
				Err:        errors.New("mock 429: rate exceeded"),
			}
		}
		return summary, nil
	}
}
