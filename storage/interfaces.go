package storage

import (
	"context"

	"github.com/variantlab/genechat/core"
)

// SessionStore provides operations for managing conversation sessions.
// Implementations must be thread-safe and support concurrent access.
type SessionStore interface {
	// AddSession adds a session to storage.
	// For sessions with ID=0, generates a new ID from sequence.
	// Sets CreatedAt/UpdatedAt timestamps and the default title if unset.
	// Returns the session with generated fields populated.
	AddSession(ctx context.Context, session *core.Session) (*core.Session, error)

	// GetSession retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist.
	GetSession(ctx context.Context, id core.ID) (*core.Session, error)

	// ListSessions retrieves all sessions, newest first.
	ListSessions(ctx context.Context) ([]*core.Session, error)

	// SetSessionTitle replaces the session's display title.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the session doesn't exist.
	SetSessionTitle(ctx context.Context, id core.ID, title string) (*core.Session, error)

	// DeleteSession removes a session and its message log.
	// Returns ErrNotFound if the session doesn't exist.
	DeleteSession(ctx context.Context, id core.ID) error

	// Close closes the store and releases resources.
	Close() error
}

// MessageLog provides the append-only message log of a session.
// Appends within one call are atomic: either every message of the call is
// committed or none is. Ordering follows creation time, with insertion
// order breaking ties.
type MessageLog interface {
	// AppendMessages appends one or more messages to a session's log in
	// a single transaction. Generates IDs from sequence and assigns
	// CreatedAt, spacing a batch so log order is stable.
	// Returns the messages with generated fields populated.
	AppendMessages(ctx context.Context, sessionID core.ID, messages ...*core.Message) ([]*core.Message, error)

	// ListMessages retrieves a session's full log in creation order.
	ListMessages(ctx context.Context, sessionID core.ID) ([]*core.Message, error)

	// Close closes the log and releases resources.
	Close() error
}

// UploadStore persists uploaded artifacts byte-exactly.
// Filename collisions are the caller's concern.
type UploadStore interface {
	// Save writes data under filename and returns the stored path.
	Save(filename string, data []byte) (string, error)
}
