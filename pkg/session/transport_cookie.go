package session

import (
	"net/http"
	"time"
)

// CookieTransport carries the session token in an HttpOnly cookie. The
// token is an opaque 256-bit random value, so the cookie needs no
// additional encryption layer.
type CookieTransport struct {
	name     string
	secure   bool
	sameSite http.SameSite
}

// CookieOption adjusts a CookieTransport.
type CookieOption func(*CookieTransport)

// WithSameSite overrides the SameSite attribute. The default is Lax.
func WithSameSite(mode http.SameSite) CookieOption {
	return func(t *CookieTransport) {
		t.sameSite = mode
	}
}

// NewCookieTransport builds a cookie transport for the named cookie.
func NewCookieTransport(name string, secure bool, opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{
		name:     name,
		secure:   secure,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken reads the token from the session cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return c.Value, nil
}

// SetToken writes the token into the session cookie.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	t.write(w, token, int(ttl.Seconds()))
	return nil
}

// ClearToken expires the session cookie on the client.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.write(w, "", -1)
	return nil
}

func (t *CookieTransport) write(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite,
	})
}
