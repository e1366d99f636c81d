package platform

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/audit"
	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/slug"
	"github.com/atelierhq/atelier/pkg/tenant"
)

// tenantSlugMaxLength caps generated slugs at a DNS-label-friendly size.
const tenantSlugMaxLength = 63

// Service implements the platform-side tenant lifecycle: directory
// listing, provisioning, suspension and deletion marking. Every
// operation runs inside a bypass scope on the request's isolation
// session, since the registry is row-secured and only a bypassed
// session sees past the bound tenant. Mutations leave an audit trail.
type Service struct {
	storage Storage
	audit   *audit.Logger
	log     *slog.Logger
}

// NewService creates the platform service. A nil logger falls back to
// slog.Default.
func NewService(storage Storage, auditLog *audit.Logger, log *slog.Logger) *Service {
	if storage == nil {
		panic("platform: storage cannot be nil")
	}
	if auditLog == nil {
		panic("platform: audit logger cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{storage: storage, audit: auditLog, log: log}
}

// ListTenants returns the full tenant directory.
func (s *Service) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	sess, ok := isolation.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var tenants []tenant.Tenant
	err := sess.WithBypass(ctx, func(ctx context.Context) error {
		var err error
		tenants, err = s.storage.ListTenants(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

// CreateTenant provisions a new shop: slugs the name, inserts the
// registry row in the provisioning state and records an audit event. A
// slug collision is retried once with a random suffix.
func (s *Service) CreateTenant(ctx context.Context, name string) (*tenant.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	sess, ok := isolation.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var created *tenant.Tenant
	err := sess.WithBypass(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.provision(ctx, name)
		return err
	})
	if err != nil {
		s.recordFailure(ctx, "tenant.create", err, audit.WithMetadata("name", name))
		return nil, err
	}

	s.recordSuccess(ctx, "tenant.create",
		audit.WithResource("tenant", created.ID.String()),
		audit.WithMetadata("slug", created.Slug))

	return created, nil
}

// provision inserts the registry row, falling back to a suffixed slug
// when the plain one collides or the name has no sluggable characters.
func (s *Service) provision(ctx context.Context, name string) (*tenant.Tenant, error) {
	if base := slug.Make(name, slug.MaxLength(tenantSlugMaxLength)); base != "" {
		created, err := s.storage.InsertTenant(ctx, CreateTenantParams{Slug: base, Name: name})
		if err == nil || !errors.Is(err, ErrSlugTaken) {
			return created, err
		}
	}

	return s.storage.InsertTenant(ctx, CreateTenantParams{
		Slug: slug.Make(name, slug.MaxLength(tenantSlugMaxLength), slug.WithSuffix(6)),
		Name: name,
	})
}

// SuspendTenant freezes a shop; its requests are rejected with 403 until
// it is reinstated.
func (s *Service) SuspendTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.transition(ctx, id, tenant.StatusSuspended, "tenant.suspend")
}

// ReinstateTenant returns a shop to active service.
func (s *Service) ReinstateTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.transition(ctx, id, tenant.StatusActive, "tenant.reinstate")
}

// MarkPendingDeletion flags a shop for the deletion workflow. Its data
// stays in place (inventory rows reference the registry with ON DELETE
// RESTRICT) but requests are rejected from this point on.
func (s *Service) MarkPendingDeletion(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.transition(ctx, id, tenant.StatusPendingDeletion, "tenant.mark_pending_deletion")
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, status tenant.Status, action string) (*tenant.Tenant, error) {
	sess, ok := isolation.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var updated *tenant.Tenant
	err := sess.WithBypass(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.storage.UpdateTenantStatus(ctx, id, status)
		return err
	})
	if err != nil {
		s.recordFailure(ctx, action, err, audit.WithResource("tenant", id.String()))
		return nil, err
	}

	s.recordSuccess(ctx, action,
		audit.WithResource("tenant", id.String()),
		audit.WithMetadata("status", string(status)))

	return updated, nil
}

// recordSuccess writes an audit event; a failing audit store never fails
// the operation, but it is loud in the logs.
func (s *Service) recordSuccess(ctx context.Context, action string, opts ...audit.EventOption) {
	if err := s.audit.Log(ctx, action, opts...); err != nil {
		s.log.ErrorContext(ctx, "failed to record audit event",
			slog.String("action", action),
			slog.Any("error", err))
	}
}

func (s *Service) recordFailure(ctx context.Context, action string, cause error, opts ...audit.EventOption) {
	if err := s.audit.LogError(ctx, action, cause, opts...); err != nil {
		s.log.ErrorContext(ctx, "failed to record audit event",
			slog.String("action", action),
			slog.Any("error", err))
	}
}
