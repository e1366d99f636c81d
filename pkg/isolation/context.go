package isolation

import (
	"context"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithSession adds an isolation session to the context. The request binder
// calls this after pinning a connection; handlers and repositories read the
// session back with FromContext or QuerierFromContext.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext retrieves the isolation session from the context.
// Returns nil, false if no session is found.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok
}

// MustFromContext retrieves the isolation session from the context.
// Panics if no session is found. Use this only in handlers mounted behind
// the request binder, where a missing session is a routing bug.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok || sess == nil {
		panic("isolation: no session in context")
	}
	return sess
}

// QuerierFromContext returns the pinned connection carried by the context's
// session. Repositories use this instead of a pool handle so their queries
// run on the connection whose isolation state the middleware configured.
// Returns nil, false when no session is bound or the session has no
// connection attached.
func QuerierFromContext(ctx context.Context) (Querier, bool) {
	sess, ok := FromContext(ctx)
	if !ok || sess == nil {
		return nil, false
	}
	return sess.Querier()
}
