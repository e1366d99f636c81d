package session

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session placed in the context by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok
}

// MustFromContext is FromContext for call sites behind EnsureSession, where
// an absent session is a programming error.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}

// UserIDFromContext returns the signed-in user behind the request, when
// the context session is authenticated.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if sess, ok := FromContext(ctx); ok && sess.IsAuthenticated() {
		return sess.UserID.UUID, true
	}
	return uuid.Nil, false
}
