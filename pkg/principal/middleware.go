package principal

import (
	"net/http"
	"strings"

	"github.com/atelierhq/atelier/pkg/authtoken"
)

// SourceFunc derives a principal from a request by some secondary means,
// such as an authenticated platform session. Returns false when the request
// carries nothing usable.
type SourceFunc func(r *http.Request) (Principal, bool)

// BearerToken extracts the credential from an "Authorization: Bearer"
// header. Returns an empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Middleware establishes the request principal from a bearer token, falling
// back to the given sources in order. It is strictly pass-through: requests
// without a valid credential continue anonymously, and rejecting them is
// left to the guards behind it. Invalid tokens are treated as absent.
func Middleware(tokens *authtoken.Service, fallbacks ...SourceFunc) func(next http.Handler) http.Handler {
	if tokens == nil {
		panic("principal: token service cannot be nil")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, ok := derive(tokens, r, fallbacks); ok {
				r = r.WithContext(WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func derive(tokens *authtoken.Service, r *http.Request, fallbacks []SourceFunc) (Principal, bool) {
	if raw := BearerToken(r); raw != "" {
		if claims, err := tokens.Parse(raw); err == nil {
			return Principal{
				UserID:    claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				Superuser: claims.Superuser,
				TenantID:  claims.TenantID,
			}, true
		}
	}
	for _, source := range fallbacks {
		if p, ok := source(r); ok {
			return p, true
		}
	}
	return Principal{}, false
}
