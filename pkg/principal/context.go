package principal

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithPrincipal adds a principal to the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the principal from the context.
// Returns a zero principal and false if none is present.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// MustFromContext retrieves the principal from the context.
// Panics if none is present. Use this only behind middleware that
// guarantees authentication.
func MustFromContext(ctx context.Context) Principal {
	p, ok := FromContext(ctx)
	if !ok {
		panic("principal: no principal in context")
	}
	return p
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts the user ID from context
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := FromContext(ctx); ok {
			return slog.String("user_id", p.UserID.String()), true
		}
		return slog.Attr{}, false
	}
}
