package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithTenant returns a context carrying the resolved tenant.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tenant placed in the context by the middleware.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(ctxKey{}).(*Tenant)
	return t, ok
}

// IDFromContext returns just the tenant id.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if t, ok := FromContext(ctx); ok && t != nil {
		return t.ID, true
	}
	return uuid.Nil, false
}

// MustFromContext is FromContext for handlers mounted behind the scoped
// middleware, where an absent tenant is a programming error.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor adds tenant_id to every log record written inside a
// tenant scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
