package session

import (
	"context"
)

// Store persists sessions keyed by token. Implementations must be safe for
// concurrent use and must not let callers mutate stored state through
// returned sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, sess *Session) error

	// Get resolves a token to its session, ErrSessionNotFound when absent.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces an existing session, never upserting.
	Update(ctx context.Context, sess *Session) error

	// Delete drops the session under token. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired evicts expired sessions. Backends that expire entries
	// themselves may implement this as a no-op.
	DeleteExpired(ctx context.Context) error
}
