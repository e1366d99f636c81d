package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/principal"
	"github.com/atelierhq/atelier/pkg/tenant"
)

// registryPool connects to the database named by ATELIER_TEST_DATABASE_URL,
// skipping when it is unset or when the role's privileges would sidestep
// row-level security.
func registryPool(t *testing.T, maxConns int32) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("ATELIER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ATELIER_TEST_DATABASE_URL is not set")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.MaxConns = maxConns

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	var privileged bool
	err = pool.QueryRow(ctx,
		"SELECT rolsuper OR rolbypassrls FROM pg_roles WHERE rolname = current_user").Scan(&privileged)
	require.NoError(t, err)
	if privileged {
		t.Skip("test role bypasses row-level security; run with an unprivileged role")
	}

	return pool
}

// ensureRegistry provisions the tenant registry schema when the test
// database has not run migrations. The statements mirror the application
// schema; when a tenants table already exists the migrations are trusted
// to have set the policies.
func ensureRegistry(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	var exists bool
	err := pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_tables WHERE schemaname = current_schema() AND tablename = 'tenants')").Scan(&exists)
	require.NoError(t, err)
	if exists {
		return
	}

	stmts := []string{
		`CREATE OR REPLACE FUNCTION app_current_tenant() RETURNS uuid
			LANGUAGE sql STABLE
			AS $$ SELECT NULLIF(current_setting('app.current_tenant', true), '')::uuid $$`,
		`CREATE OR REPLACE FUNCTION app_rls_bypassed() RETURNS boolean
			LANGUAGE sql STABLE
			AS $$ SELECT current_setting('app.bypass_rls', true) = 'on' $$`,
		`CREATE TABLE tenants (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			slug text NOT NULL UNIQUE,
			name text NOT NULL,
			status text NOT NULL DEFAULT 'provisioning'
				CHECK (status IN ('provisioning', 'active', 'suspended', 'pending_deletion')),
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`ALTER TABLE tenants ENABLE ROW LEVEL SECURITY`,
		`ALTER TABLE tenants FORCE ROW LEVEL SECURITY`,
		`CREATE POLICY tenants_select ON tenants FOR SELECT
			USING (app_rls_bypassed() OR id = app_current_tenant())`,
		`CREATE POLICY tenants_update ON tenants FOR UPDATE
			USING (app_rls_bypassed() OR id = app_current_tenant())
			WITH CHECK (app_rls_bypassed() OR id = app_current_tenant())`,
		`CREATE POLICY tenants_insert ON tenants FOR INSERT
			WITH CHECK (app_rls_bypassed())`,
		`CREATE POLICY tenants_delete ON tenants FOR DELETE
			USING (app_rls_bypassed())`,
	}
	for _, stmt := range stmts {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

// seedTenant inserts a registry row through a bypassed session, the same
// way the platform provisions real tenants, and removes it afterwards.
func seedTenant(t *testing.T, pool *pgxpool.Pool, name string, status tenant.Status) *tenant.Tenant {
	t.Helper()
	ctx := context.Background()
	binder := isolation.NewPoolBinder(pool)

	sess, release, err := binder.Bind(ctx)
	require.NoError(t, err)
	defer release()

	q, ok := sess.Querier()
	require.True(t, ok)
	require.NoError(t, sess.EnableBypass(ctx))

	var (
		tn tenant.Tenant
		st string
	)
	row := q.QueryRow(ctx,
		`INSERT INTO tenants (slug, name, status) VALUES ($1, $2, $3)
		 RETURNING id, slug, name, status, created_at, updated_at`,
		"it-"+uuid.NewString()[:8], name, string(status))
	require.NoError(t, row.Scan(&tn.ID, &tn.Slug, &tn.Name, &st, &tn.CreatedAt, &tn.UpdatedAt))
	tn.Status = tenant.Status(st)

	t.Cleanup(func() {
		ctx := context.Background()
		sess, release, err := binder.Bind(ctx)
		if err != nil {
			return
		}
		defer release()
		if q, ok := sess.Querier(); ok {
			if err := sess.EnableBypass(ctx); err == nil {
				_, _ = q.Exec(ctx, "DELETE FROM tenants WHERE id = $1", tn.ID)
			}
		}
	})

	return &tn
}

func TestIntegrationMiddleware(t *testing.T) {
	pool := registryPool(t, 2)
	ensureRegistry(t, pool)

	shop := seedTenant(t, pool, "Gilded Lily", tenant.StatusActive)
	frozen := seedTenant(t, pool, "Frozen Assets", tenant.StatusSuspended)

	binder := isolation.NewPoolBinder(pool)
	mw := tenant.Middleware(binder, tenant.NewPgProvider())

	t.Run("member reaches own shop", func(t *testing.T) {
		// The lookup itself runs against the row-secured registry, so a
		// success here proves the candidate is bound before the lookup.
		var got *tenant.Tenant
		var bound uuid.UUID
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = tenant.FromContext(r.Context())
			sess := isolation.MustFromContext(r.Context())
			id, ok, err := sess.CurrentTenant(r.Context())
			require.NoError(t, err)
			require.True(t, ok)
			bound = id
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, memberRequest("/items", shop.ID))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, shop.ID, got.ID)
		assert.Equal(t, tenant.StatusActive, got.Status)
		assert.Equal(t, shop.ID, bound)
	})

	t.Run("suspended shop is rejected", func(t *testing.T) {
		var handled int
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handled++
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, memberRequest("/items", frozen.ID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, handled)
		body := decodeErrorBody(t, rec)
		assert.Equal(t, "suspended", body["tenant_status"])
	})

	t.Run("unknown tenant claim is not found", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, memberRequest("/items", uuid.New()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("registry is invisible without a binding", func(t *testing.T) {
		var n int
		err := pool.QueryRow(context.Background(),
			"SELECT count(*) FROM tenants WHERE id = $1", shop.ID).Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n, "unbound connections must not see registry rows")
	})

	t.Run("admin prefix serves with bypass", func(t *testing.T) {
		mw := tenant.Middleware(binder, tenant.NewPgProvider(),
			tenant.WithAdminPrefixes("/admin"),
		)

		var n int
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q, ok := isolation.QuerierFromContext(r.Context())
			require.True(t, ok)
			require.NoError(t, q.QueryRow(r.Context(),
				"SELECT count(*) FROM tenants WHERE id = ANY($1)",
				[]uuid.UUID{shop.ID, frozen.ID}).Scan(&n))
		}))

		r := httptest.NewRequest(http.MethodGet, "/admin/tenants", nil)
		r = r.WithContext(principal.WithPrincipal(r.Context(), principal.Principal{
			UserID: uuid.New(), Role: tenant.DefaultAdminRole,
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, n, "bypass must reveal every registry row")
	})
}
