package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found. Providers
	// report it both for missing rows and for rows hidden by row-level
	// security, so callers cannot distinguish the two cases.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantContextMissing is returned when an authenticated request
	// carries no tenant identifier in any configured source.
	ErrTenantContextMissing = errors.New("tenant context missing")

	// ErrTenantSuspended is returned when the resolved tenant is suspended.
	ErrTenantSuspended = errors.New("tenant is suspended")

	// ErrTenantPendingDeletion is returned when the resolved tenant is
	// scheduled for deletion.
	ErrTenantPendingDeletion = errors.New("tenant is pending deletion")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
