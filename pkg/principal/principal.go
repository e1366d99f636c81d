package principal

import "github.com/google/uuid"

// Principal is the authenticated caller of a request. It says who the
// caller is, not what they may do; authorization decisions stay with the
// handlers and policies that consume it.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	Superuser bool
	// TenantID is the tenant the caller authenticated against, when any.
	// The tenant middleware uses it as one of its derivation sources.
	TenantID uuid.NullUUID
}

// IsPlatformAdmin reports whether the principal may operate across tenant
// boundaries: either a superuser or a holder of the designated admin role.
func (p Principal) IsPlatformAdmin(adminRole string) bool {
	if p.Superuser {
		return true
	}
	return adminRole != "" && p.Role == adminRole
}
