package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/session"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("attaches an existing session", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		seed := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		created, err := m.Ensure(seed.Context(), w, seed)
		require.NoError(t, err)

		handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, created.ID, sess.ID)
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(sessionCookie(t, w, "sid"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("passes through without a session", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := session.FromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("rejects anonymous requests", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects unauthenticated sessions", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		seed := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		_, err := m.Ensure(seed.Context(), w, seed)
		require.NoError(t, err)

		handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(sessionCookie(t, w, "sid"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admits authenticated sessions", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		seed := httptest.NewRequest("POST", "/login", nil)
		w := httptest.NewRecorder()
		require.NoError(t, m.Authenticate(seed.Context(), w, seed, uuid.New()))

		handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.MustFromContext(r.Context())
			assert.True(t, sess.IsAuthenticated())
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(sessionCookie(t, w, "sid"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestEnsureSession(t *testing.T) {
	t.Parallel()

	t.Run("creates a session when absent", func(t *testing.T) {
		t.Parallel()

		m := session.New()
		handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := session.FromContext(r.Context())
			assert.True(t, ok)
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserIDFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns the user of an authenticated session", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sess := session.NewSession("tok", uuid.NullUUID{UUID: userID, Valid: true}, 0)
		ctx := session.WithSession(context.Background(), sess)

		got, ok := session.UserIDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("false for anonymous sessions", func(t *testing.T) {
		t.Parallel()

		sess := session.NewSession("tok", uuid.NullUUID{}, 0)
		ctx := session.WithSession(context.Background(), sess)

		_, ok := session.UserIDFromContext(ctx)
		assert.False(t, ok)
	})
}
