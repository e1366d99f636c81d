package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tenant.
type Status string

const (
	StatusProvisioning    Status = "provisioning"
	StatusActive          Status = "active"
	StatusSuspended       Status = "suspended"
	StatusPendingDeletion Status = "pending_deletion"
)

// Usable reports whether requests may be served under this status.
// Provisioning tenants are usable; rejecting them would break the first
// sign-in right after sign-up, before provisioning completes.
func (s Status) Usable() bool {
	return s != StatusSuspended && s != StatusPendingDeletion
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusProvisioning, StatusActive, StatusSuspended, StatusPendingDeletion:
		return true
	}
	return false
}

// Tenant is one customer workspace: a jewelry shop with its own catalog,
// customers and staff, isolated from every other shop at the row level.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider loads tenant records for the middleware's lifecycle check.
type Provider interface {
	// GetByID retrieves a tenant by id. Returns ErrTenantNotFound when no
	// tenant matches, including when row-level security hides the row
	// from the current connection.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
}
