package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the session token in an HTTP header, for API
// clients that do not speak cookies.
type HeaderTransport struct {
	name   string
	prefix string
}

// HeaderOption adjusts a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix prepends a prefix to the header value, such as "Bearer ".
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport builds a header transport for the named header.
func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken reads the token from the header, stripping the configured
// prefix when present.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	raw := r.Header.Get(t.name)
	if raw == "" {
		return "", ErrSessionNotFound
	}
	if t.prefix != "" {
		if trimmed, found := strings.CutPrefix(raw, t.prefix); found {
			return trimmed, nil
		}
	}
	return raw, nil
}

// SetToken writes the token into the response header, with a companion
// -Expires header when the lifetime is known.
func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.name, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.name+"-Expires", time.Now().Add(ttl).Format(time.RFC3339))
	}
	return nil
}

// ClearToken drops the session headers from the response.
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.name + "-Expires")
	return nil
}
