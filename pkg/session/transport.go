package session

import (
	"net/http"
	"time"
)

// Transport moves the opaque session token between client and server.
// Implementations carry the token verbatim and never interpret it.
type Transport interface {
	// GetToken pulls the token off the request, ErrSessionNotFound when
	// the request carries none.
	GetToken(r *http.Request) (string, error)

	// SetToken hands the token to the client with the given lifetime.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken tells the client to drop its token.
	ClearToken(w http.ResponseWriter) error
}
