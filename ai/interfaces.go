package ai

import "context"

// Searcher answers natural-language queries from external knowledge sources.
// Implementations must be thread-safe for concurrent use.
type Searcher interface {
	// Search runs one knowledge lookup and returns a textual summary.
	// Throttling rejections are returned as *ThrottleError; callers may
	// retry after the suggested delay.
	Search(ctx context.Context, query string) (string, error)
}

// Turn is one entry of conversational context passed to a Generator.
type Turn struct {
	// Role is the wire name of the author, "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Generator produces conversational text.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Chat generates the next assistant reply given the ordered
	// conversation history.
	Chat(ctx context.Context, history []Turn) (string, error)

	// Title derives a short descriptive session title from the most
	// recent user input and assistant reply.
	Title(ctx context.Context, user, assistant string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Searcher and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Searcher returns the knowledge-lookup service.
	// The returned Searcher is safe for concurrent use.
	Searcher() Searcher

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
