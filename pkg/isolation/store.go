package isolation

import (
	"context"

	"github.com/google/uuid"
)

// Store holds the two per-connection isolation values consulted by the
// row-level security policies: the active tenant and the bypass flag.
// Writes take effect immediately and are visible only to reads and queries
// on the same connection.
//
// Implementations wrap every failure with ErrStoreUnavailable.
type Store interface {
	// SetCurrentTenant sets or clears the active tenant for this connection.
	SetCurrentTenant(ctx context.Context, id uuid.NullUUID) error

	// CurrentTenant reads the active tenant. An invalid NullUUID means no
	// tenant is bound.
	CurrentTenant(ctx context.Context) (uuid.NullUUID, error)

	// SetBypass sets the row-level security bypass flag.
	SetBypass(ctx context.Context, on bool) error

	// Bypassed reads the bypass flag.
	Bypassed(ctx context.Context) (bool, error)
}
