package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/pg"
)

// ProviderFunc is an adapter to allow the use of ordinary functions as
// Providers.
type ProviderFunc func(ctx context.Context, id uuid.UUID) (*Tenant, error)

// GetByID calls the function.
func (f ProviderFunc) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return f(ctx, id)
}

// PgProvider reads the tenants table through the isolation session's
// pinned connection. Lookups therefore run under whatever tenant context
// is bound to that connection: the registry's own SELECT policy admits a
// row only when the bound tenant matches or bypass is enabled, so a
// lookup for a tenant other than the bound one comes back as not found.
type PgProvider struct{}

// NewPgProvider creates a provider backed by the isolation session in ctx.
func NewPgProvider() *PgProvider {
	return &PgProvider{}
}

const getTenantByIDQuery = `SELECT id, slug, name, status, created_at, updated_at FROM tenants WHERE id = $1`

// GetByID implements Provider. The context must carry a bound isolation
// session; lookups without one fail rather than silently running
// unscoped on a shared pool.
func (p *PgProvider) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, errors.New("tenant: no isolation session in context")
	}

	var (
		t      Tenant
		status string
	)
	err := q.QueryRow(ctx, getTenantByIDQuery, id).Scan(
		&t.ID, &t.Slug, &t.Name, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(errors.New("tenant: lookup failed"), err)
	}
	t.Status = Status(status)

	return &t, nil
}
