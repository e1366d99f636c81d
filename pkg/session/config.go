package session

import "time"

// Config carries session settings loadable from the environment.
type Config struct {
	// CookieName names the session cookie used by the default transport.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the session lifetime, restarted on authentication.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// CleanupInterval is how often the memory store sweeps expired
	// sessions. Zero disables the sweep.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies adds the Secure flag to session cookies. Turn it on
	// everywhere TLS terminates in front of the service.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault values above.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             720 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewFromConfig builds a Manager from cfg. Store and transport still come
// from options, with in-memory and cookie defaults.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
