package platform

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/pg"
	"github.com/atelierhq/atelier/pkg/tenant"
)

// CreateTenantParams carries the registry fields chosen during
// provisioning.
type CreateTenantParams struct {
	Slug string
	Name string
}

// Storage defines the registry operations the platform service needs.
type Storage interface {
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	InsertTenant(ctx context.Context, params CreateTenantParams) (*tenant.Tenant, error)
	UpdateTenantStatus(ctx context.Context, id uuid.UUID, status tenant.Status) (*tenant.Tenant, error)
}

// Repository runs registry statements through the isolation session's
// pinned connection. The tenants table is row-secured like everything
// else; cross-tenant visibility comes from the session's bypass state,
// not from the SQL.
type Repository struct{}

// NewRepository creates a repository backed by the isolation session in ctx.
func NewRepository() *Repository {
	return &Repository{}
}

const (
	listTenantsQuery = `SELECT id, slug, name, status, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC, id`

	insertTenantQuery = `INSERT INTO tenants (id, slug, name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, slug, name, status, created_at, updated_at`

	updateTenantStatusQuery = `UPDATE tenants
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, slug, name, status, created_at, updated_at`
)

// ListTenants returns every registry row the session may see: all of them
// under bypass, at most the bound tenant otherwise.
func (r *Repository) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	rows, err := q.Query(ctx, listTenantsQuery)
	if err != nil {
		return nil, errors.Join(errors.New("platform: list tenants failed"), err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var (
			tn     tenant.Tenant
			status string
		)
		if err := rows.Scan(&tn.ID, &tn.Slug, &tn.Name, &status, &tn.CreatedAt, &tn.UpdatedAt); err != nil {
			return nil, errors.Join(errors.New("platform: list tenants failed"), err)
		}
		tn.Status = tenant.Status(status)
		tenants = append(tenants, tn)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(errors.New("platform: list tenants failed"), err)
	}

	return tenants, nil
}

// InsertTenant creates a registry row in the provisioning state. The
// INSERT policy on tenants admits bypassed sessions only, so calling this
// outside a bypass scope fails with ErrBypassRequired.
func (r *Repository) InsertTenant(ctx context.Context, params CreateTenantParams) (*tenant.Tenant, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var (
		tn     tenant.Tenant
		status string
	)
	err := q.QueryRow(ctx, insertTenantQuery,
		uuid.New(), params.Slug, params.Name, string(tenant.StatusProvisioning),
	).Scan(&tn.ID, &tn.Slug, &tn.Name, &status, &tn.CreatedAt, &tn.UpdatedAt)
	if err != nil {
		switch {
		case pg.IsDuplicateKeyError(err):
			return nil, ErrSlugTaken
		case pg.IsRLSDeniedError(err):
			return nil, errors.Join(ErrBypassRequired, err)
		}
		return nil, errors.Join(errors.New("platform: insert tenant failed"), err)
	}
	tn.Status = tenant.Status(status)

	return &tn, nil
}

// UpdateTenantStatus moves a tenant through its lifecycle and returns the
// updated row. Rows the session cannot see read as not found.
func (r *Repository) UpdateTenantStatus(ctx context.Context, id uuid.UUID, status tenant.Status) (*tenant.Tenant, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var (
		tn      tenant.Tenant
		current string
	)
	err := q.QueryRow(ctx, updateTenantStatusQuery, id, string(status)).Scan(
		&tn.ID, &tn.Slug, &tn.Name, &current, &tn.CreatedAt, &tn.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(errors.New("platform: update tenant status failed"), err)
	}
	tn.Status = tenant.Status(current)

	return &tn, nil
}
