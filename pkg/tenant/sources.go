package tenant

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/authtoken"
	"github.com/atelierhq/atelier/pkg/principal"
	"github.com/atelierhq/atelier/pkg/session"
)

// SessionKey is the session data key holding the active tenant selection.
const SessionKey = "tenant_id"

// Source derives the tenant ID for a request from one credential or
// request attribute. Returning false means this source has nothing to
// say and the next source is consulted. Malformed values are treated
// as absent rather than reported as errors, so a stale credential
// degrades to "no tenant" instead of failing the request outright.
type Source func(r *http.Request) (uuid.UUID, bool)

// BearerTokenSource extracts the tenant ID embedded in the request's
// bearer token. Invalid or expired tokens yield no tenant.
func BearerTokenSource(tokens *authtoken.Service) Source {
	if tokens == nil {
		panic("tenant: token service is required")
	}
	return func(r *http.Request) (uuid.UUID, bool) {
		raw := principal.BearerToken(r)
		if raw == "" {
			return uuid.Nil, false
		}
		claims, err := tokens.Parse(raw)
		if err != nil || !claims.TenantID.Valid {
			return uuid.Nil, false
		}
		return claims.TenantID.UUID, true
	}
}

// SessionSource reads the active tenant selection from the session in
// the request context. The selection is stored under the "tenant_id"
// key when a user picks a workspace; values that do not parse as UUIDs
// are treated as absent.
func SessionSource() Source {
	return func(r *http.Request) (uuid.UUID, bool) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			return uuid.Nil, false
		}
		raw, ok := sess.GetString(SessionKey)
		if !ok || raw == "" {
			return uuid.Nil, false
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
}

// PrincipalSource reads the tenant attribute of the authenticated
// principal in the request context.
func PrincipalSource() Source {
	return func(r *http.Request) (uuid.UUID, bool) {
		p, ok := principal.FromContext(r.Context())
		if !ok || !p.TenantID.Valid {
			return uuid.Nil, false
		}
		return p.TenantID.UUID, true
	}
}
