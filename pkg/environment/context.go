package environment

import "context"

// Environment represents the application runtime environment.
type Environment string

const (
	// Development for local development.
	Development Environment = "development"
	// Staging for pre-production.
	Staging Environment = "staging"
	// Production for production.
	Production Environment = "production"
)

type contextKey struct{}

// WithContext returns a context carrying the given environment.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from context. Returns the empty
// Environment when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether the context environment is production.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Production || env == "prod"
}

// IsDevelopment reports whether the context environment is development.
func IsDevelopment(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Development || env == "dev"
}

// IsStaging reports whether the context environment is staging.
func IsStaging(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Staging || env == "stage"
}
