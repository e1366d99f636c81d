package tenant

import (
	"log/slog"
)

// DefaultAdminRole is the principal role treated as platform administrator
// when no override is configured.
const DefaultAdminRole = "platform_admin"

// MetricsRecorder counts middleware outcomes. *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	TenantRejection(reason string)
	BypassSession()
}

// config holds middleware configuration.
type config struct {
	exemptPrefixes []string
	adminPrefixes  []string
	adminRole      string
	sources        []Source
	log            *slog.Logger
	errorHandler   ErrorHandler
	metrics        MetricsRecorder
}

// Option configures the middleware.
type Option func(*config)

// WithExemptPrefixes sets path prefixes that skip tenant derivation
// entirely: auth endpoints, health and metrics, static assets.
func WithExemptPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.exemptPrefixes = append(c.exemptPrefixes, prefixes...)
	}
}

// WithAdminPrefixes sets path prefixes served with tenant filtering
// bypassed when the caller is a platform administrator. Other callers
// pass through unbound, leaving rejection to the admin router's own
// authorization.
func WithAdminPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.adminPrefixes = append(c.adminPrefixes, prefixes...)
	}
}

// WithAdminRole overrides the role name recognized as platform
// administrator. Principals with the superuser flag qualify regardless.
func WithAdminRole(role string) Option {
	return func(c *config) {
		c.adminRole = role
	}
}

// WithSources replaces the derivation sources, consulted in order.
func WithSources(sources ...Source) Option {
	return func(c *config) {
		c.sources = sources
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithMetrics wires rejection and bypass counters.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *config) {
		c.metrics = m
	}
}
