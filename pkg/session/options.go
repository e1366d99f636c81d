package session

import (
	"time"
)

// Option configures a Manager during New.
type Option func(*Manager)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithStore swaps the session store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport swaps the token transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithCookieName renames the session cookie used by the default transport.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.cfg.CookieName = name
	}
}

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TTL = ttl
	}
}

// WithCleanupInterval overrides how often the default memory store sweeps
// expired sessions.
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.CleanupInterval = interval
	}
}
