package session

import (
	"net/http"
)

// Middleware attaches the request's session to the context when one
// resolves. Requests without a usable token pass through untouched, so
// downstream code decides what an absent session means.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		serveWith(next, w, r, sess)
	})
}

// RequireAuth rejects requests that do not carry an authenticated session.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Get(r.Context(), r)
		if err != nil || !sess.IsAuthenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		serveWith(next, w, r, sess)
	})
}

// EnsureSession guarantees a session exists before the handler runs,
// minting an anonymous one when needed.
func (m *Manager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		serveWith(next, w, r, sess)
	})
}

func serveWith(next http.Handler, w http.ResponseWriter, r *http.Request, sess *Session) {
	next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
}
