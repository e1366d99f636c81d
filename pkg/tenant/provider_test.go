package tenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/tenant"
)

// tenantRow is a single-row pgx.Row feeding Scan from a Tenant fixture.
type tenantRow struct {
	t   *tenant.Tenant
	err error
}

func (r tenantRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uuid.UUID) = r.t.ID
	*dest[1].(*string) = r.t.Slug
	*dest[2].(*string) = r.t.Name
	*dest[3].(*string) = string(r.t.Status)
	*dest[4].(*time.Time) = r.t.CreatedAt
	*dest[5].(*time.Time) = r.t.UpdatedAt
	return nil
}

// registryConn fakes the pinned connection the provider queries through.
type registryConn struct {
	tenants map[uuid.UUID]*tenant.Tenant
	err     error
	lastSQL string
}

func (c *registryConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (c *registryConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query call")
}

func (c *registryConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.lastSQL = sql
	if c.err != nil {
		return tenantRow{err: c.err}
	}
	id, ok := args[0].(uuid.UUID)
	if !ok {
		return tenantRow{err: errors.New("expected uuid argument")}
	}
	t, ok := c.tenants[id]
	if !ok {
		return tenantRow{err: pgx.ErrNoRows}
	}
	return tenantRow{t: t}
}

func registryContext(t *testing.T, conn *registryConn) context.Context {
	t.Helper()
	sess := isolation.NewSession(isolation.NewMemoryStore(), isolation.WithQuerier(conn))
	return isolation.WithSession(context.Background(), sess)
}

func TestPgProvider_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("returns tenant", func(t *testing.T) {
		t.Parallel()

		want := &tenant.Tenant{
			ID:        uuid.New(),
			Slug:      "gilded-lily",
			Name:      "Gilded Lily",
			Status:    tenant.StatusActive,
			CreatedAt: time.Now().Add(-time.Hour).Truncate(time.Second),
			UpdatedAt: time.Now().Truncate(time.Second),
		}
		conn := &registryConn{tenants: map[uuid.UUID]*tenant.Tenant{want.ID: want}}

		got, err := tenant.NewPgProvider().GetByID(registryContext(t, conn), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Contains(t, conn.lastSQL, "FROM tenants")
	})

	t.Run("no rows is not found", func(t *testing.T) {
		t.Parallel()

		conn := &registryConn{tenants: map[uuid.UUID]*tenant.Tenant{}}

		_, err := tenant.NewPgProvider().GetByID(registryContext(t, conn), uuid.New())
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		conn := &registryConn{err: cause}

		_, err := tenant.NewPgProvider().GetByID(registryContext(t, conn), uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("requires isolation session in context", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewPgProvider().GetByID(context.Background(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("requires a querier on the session", func(t *testing.T) {
		t.Parallel()

		sess := isolation.NewSession(isolation.NewMemoryStore())
		ctx := isolation.WithSession(context.Background(), sess)

		_, err := tenant.NewPgProvider().GetByID(ctx, uuid.New())
		assert.Error(t, err)
	})
}
