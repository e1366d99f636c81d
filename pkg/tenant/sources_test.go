package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/authtoken"
	"github.com/atelierhq/atelier/pkg/principal"
	"github.com/atelierhq/atelier/pkg/session"
	"github.com/atelierhq/atelier/pkg/tenant"
)

func newTokenService(t *testing.T) *authtoken.Service {
	t.Helper()
	svc, err := authtoken.New(authtoken.Config{
		SigningKey: "test-signing-key-0123456789abcdef",
		Issuer:     "atelier-test",
		TTL:        time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestBearerTokenSource(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t)
	source := tenant.BearerTokenSource(tokens)

	t.Run("token with tenant claim", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		token, err := tokens.Generate(authtoken.Claims{
			UserID:   uuid.New(),
			TenantID: uuid.NullUUID{UUID: tenantID, Valid: true},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		got, ok := source(r)
		require.True(t, ok)
		assert.Equal(t, tenantID, got)
	})

	t.Run("token without tenant claim", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Generate(authtoken.Claims{UserID: uuid.New()})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("no authorization header", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("garbage token treated as absent", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")

		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("nil token service panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.BearerTokenSource(nil)
		})
	})
}

func TestSessionSource(t *testing.T) {
	t.Parallel()

	source := tenant.SessionSource()

	t.Run("selection present", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		sess := session.NewSession("tok", uuid.NullUUID{UUID: uuid.New(), Valid: true}, time.Hour)
		sess.Set(tenant.SessionKey, tenantID.String())

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(session.WithSession(r.Context(), sess))

		got, ok := source(r)
		require.True(t, ok)
		assert.Equal(t, tenantID, got)
	})

	t.Run("no session in context", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("no selection in session", func(t *testing.T) {
		t.Parallel()

		sess := session.NewSession("tok", uuid.NullUUID{}, time.Hour)
		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(session.WithSession(r.Context(), sess))

		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("non-uuid selection treated as absent", func(t *testing.T) {
		t.Parallel()

		sess := session.NewSession("tok", uuid.NullUUID{}, time.Hour)
		sess.Set(tenant.SessionKey, "acme-jewelers")

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(session.WithSession(r.Context(), sess))

		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("non-string selection treated as absent", func(t *testing.T) {
		t.Parallel()

		sess := session.NewSession("tok", uuid.NullUUID{}, time.Hour)
		sess.Set(tenant.SessionKey, 42)

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(session.WithSession(r.Context(), sess))

		_, ok := source(r)
		assert.False(t, ok)
	})
}

func TestPrincipalSource(t *testing.T) {
	t.Parallel()

	source := tenant.PrincipalSource()

	t.Run("principal with tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		p := principal.Principal{
			UserID:   uuid.New(),
			TenantID: uuid.NullUUID{UUID: tenantID, Valid: true},
		}

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(principal.WithPrincipal(r.Context(), p))

		got, ok := source(r)
		require.True(t, ok)
		assert.Equal(t, tenantID, got)
	})

	t.Run("principal without tenant", func(t *testing.T) {
		t.Parallel()

		p := principal.Principal{UserID: uuid.New()}
		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		r = r.WithContext(principal.WithPrincipal(r.Context(), p))

		_, ok := source(r)
		assert.False(t, ok)
	})

	t.Run("no principal", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/items", nil)
		_, ok := source(r)
		assert.False(t, ok)
	})
}
