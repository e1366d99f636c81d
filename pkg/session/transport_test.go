package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/session"
)

func TestCookieTransport(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the token", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid", false)
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "tok-123", time.Hour))

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(sessionCookie(t, w, "sid"))

		got, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "tok-123", got)
	})

	t.Run("sets security attributes", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid", true, session.WithSameSite(http.SameSiteStrictMode))
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "tok", time.Hour))

		c := sessionCookie(t, w, "sid")
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid", false)
		_, err := tr.GetToken(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid", false)
		w := httptest.NewRecorder()
		require.NoError(t, tr.ClearToken(w))

		c := sessionCookie(t, w, "sid")
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	})
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the token", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "tok-123", time.Hour))
		assert.Equal(t, "tok-123", w.Header().Get("X-Session-Token"))
		assert.NotEmpty(t, w.Header().Get("X-Session-Token-Expires"))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Session-Token", "tok-123")
		got, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "tok-123", got)
	})

	t.Run("strips a configured prefix", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Bearer "))
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer tok-123")

		got, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "tok-123", got)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")
		_, err := tr.GetToken(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("clear removes the headers", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "tok", time.Hour))
		require.NoError(t, tr.ClearToken(w))
		assert.Empty(t, w.Header().Get("X-Session-Token"))
		assert.Empty(t, w.Header().Get("X-Session-Token-Expires"))
	})
}
