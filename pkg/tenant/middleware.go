package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/principal"
)

// Middleware binds each request to a tenant-scoped database connection.
//
// Non-exempt requests derive a tenant ID from the configured sources,
// pin a connection through the binder, bind the tenant on it, and verify
// the tenant exists and is usable before invoking the handler with the
// tenant and the isolation session in context. The binding is torn down
// when the handler returns, on rejection and on panic, so a connection
// never re-enters the pool carrying tenant state.
//
// Authentication is read from the principal in context: requests without
// a principal are anonymous and pass through unbound when no tenant is
// derivable, which keeps public endpoints working without exemptions.
func Middleware(binder isolation.Binder, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	if binder == nil {
		panic("tenant: binder is required")
	}
	if provider == nil {
		panic("tenant: provider is required")
	}

	cfg := &config{
		adminRole:    DefaultAdminRole,
		log:          slog.Default(),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.sources) == 0 {
		cfg.sources = []Source{SessionSource(), PrincipalSource()}
	}

	m := &middleware{cfg: cfg, binder: binder, provider: provider}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case hasPrefix(cfg.exemptPrefixes, r.URL.Path):
				next.ServeHTTP(w, r)
			case hasPrefix(cfg.adminPrefixes, r.URL.Path):
				m.serveAdmin(next, w, r)
			default:
				m.serveScoped(next, w, r)
			}
		})
	}
}

type middleware struct {
	cfg      *config
	binder   isolation.Binder
	provider Provider
}

// serveScoped handles the ordinary tenant-scoped path.
func (m *middleware) serveScoped(next http.Handler, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Step 1: derive the tenant, first source wins.
	id, ok := deriveTenant(m.cfg.sources, r)
	if !ok {
		if _, authenticated := principal.FromContext(ctx); !authenticated {
			next.ServeHTTP(w, r)
			return
		}
		m.cfg.log.DebugContext(ctx, "no tenant derivable for authenticated request",
			slog.String("path", r.URL.Path))
		m.reject(w, r, "missing_context", ErrTenantContextMissing, nil)
		return
	}

	// Step 2: pin a connection for the rest of the request.
	sess, release, err := m.binder.Bind(ctx)
	if err != nil {
		m.cfg.log.ErrorContext(ctx, "failed to bind isolation session", slog.Any("error", err))
		m.reject(w, r, "bind_failed", err, nil)
		return
	}
	defer release()

	// Step 3: bind the candidate tenant before the registry lookup. The
	// tenants table is itself row-secured, so the lookup only sees the
	// row when the connection is already bound to it.
	if err := sess.SetTenant(ctx, id); err != nil {
		m.cfg.log.ErrorContext(ctx, "failed to bind tenant on connection",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
		m.reject(w, r, "bind_failed", err, release)
		return
	}

	ctx = isolation.WithSession(ctx, sess)

	// Step 4: lifecycle check.
	t, err := m.provider.GetByID(ctx, id)
	switch {
	case errors.Is(err, ErrTenantNotFound):
		m.reject(w, r, "not_found", ErrTenantNotFound, release)
		return
	case err != nil:
		m.cfg.log.ErrorContext(ctx, "tenant lookup failed",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
		m.reject(w, r, "lookup_failed", err, release)
		return
	}

	switch t.Status {
	case StatusSuspended:
		m.reject(w, r, "suspended", ErrTenantSuspended, release)
		return
	case StatusPendingDeletion:
		m.reject(w, r, "pending_deletion", ErrTenantPendingDeletion, release)
		return
	}

	// Step 5: hand the scoped request to the handler.
	next.ServeHTTP(w, r.WithContext(WithTenant(ctx, t)))
}

// serveAdmin handles admin-prefixed paths: platform administrators get a
// bound session with tenant filtering bypassed for the duration of the
// request; everyone else passes through unbound and is rejected by the
// admin router's own authorization.
func (m *middleware) serveAdmin(next http.Handler, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := principal.FromContext(ctx)
	if !ok || !p.IsPlatformAdmin(m.cfg.adminRole) {
		next.ServeHTTP(w, r)
		return
	}

	sess, release, err := m.binder.Bind(ctx)
	if err != nil {
		m.cfg.log.ErrorContext(ctx, "failed to bind isolation session", slog.Any("error", err))
		m.reject(w, r, "bind_failed", err, nil)
		return
	}
	defer release()

	if err := sess.EnableBypass(ctx); err != nil {
		m.cfg.log.ErrorContext(ctx, "failed to enable bypass on connection", slog.Any("error", err))
		m.reject(w, r, "bind_failed", err, release)
		return
	}
	if m.cfg.metrics != nil {
		m.cfg.metrics.BypassSession()
	}

	next.ServeHTTP(w, r.WithContext(isolation.WithSession(ctx, sess)))
}

// reject tears down the binding first, then writes the error response.
// The connection is back in a clean state (or destroyed) before any byte
// reaches the client, so a rejected request can never bleed its candidate
// tenant into the pool.
func (m *middleware) reject(w http.ResponseWriter, r *http.Request, reason string, err error, release isolation.ReleaseFunc) {
	if release != nil {
		release()
	}
	if m.cfg.metrics != nil {
		m.cfg.metrics.TenantRejection(reason)
	}
	m.cfg.errorHandler(w, r, err)
}

// RequireTenant creates middleware that ensures a tenant is present in the
// context. Mount it on routes that must never serve unscoped, such as
// everything behind workspace sign-in.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t, ok := FromContext(r.Context()); !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasPrefix(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func deriveTenant(sources []Source, r *http.Request) (uuid.UUID, bool) {
	for _, source := range sources {
		if id, ok := source(r); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
