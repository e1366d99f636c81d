// Package tenant derives, validates, and binds the tenant for every HTTP
// request so that downstream queries run under PostgreSQL row-level
// security.
//
// The package sits between authentication and the application handlers.
// For each non-exempt request it derives a tenant ID from the configured
// sources, pins a database connection through an isolation.Binder, binds
// the tenant on that connection, and checks the tenant's lifecycle status
// before the handler runs. Handlers and repositories then reach the bound
// connection through isolation.QuerierFromContext and never add tenant
// WHERE clauses themselves.
//
// # Architecture
//
// Three pieces cooperate:
//
// 1. Sources - derive the candidate tenant ID from a request (bearer
// token claim, session selection, principal attribute)
// 2. Provider - loads the tenant entity from the registry over the
// already-bound connection
// 3. Middleware - orchestrates binding, lookup, lifecycle rejection, and
// guaranteed teardown
//
// The lookup deliberately happens after binding: the tenants table is
// itself row-secured, so the registry only reveals the row matching the
// connection's bound tenant. A caller claiming someone else's tenant ID
// gets "not found", not a peek at another workspace.
//
// # Usage
//
//	binder := isolation.NewPoolBinder(pool)
//	provider := tenant.NewPgProvider()
//
//	mw := tenant.Middleware(binder, provider,
//		tenant.WithSources(tenant.BearerTokenSource(tokens), tenant.SessionSource(), tenant.PrincipalSource()),
//		tenant.WithExemptPrefixes("/auth", "/health", "/metrics", "/static"),
//		tenant.WithAdminPrefixes("/admin"),
//	)
//
//	router.Use(mw)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// queries via isolation.QuerierFromContext(r.Context()) are
//		// scoped to t automatically
//	}
//
// # Request outcomes
//
// Anonymous requests with no derivable tenant pass through unbound, which
// keeps public endpoints working. Authenticated requests with no derivable
// tenant are rejected with 403. A resolved tenant that is missing, gone,
// or hidden by policy yields 404; suspended and pending-deletion tenants
// yield 403 with a tenant_status field; registry failures yield 500. In
// every rejection the connection is reset before the response is written
// and the handler is never invoked.
//
// # Administrators
//
// Requests under an admin prefix made by a platform administrator
// (superuser flag or the configured admin role) are served with row-level
// security bypassed for the duration of the request. Bypass sessions are
// logged at WARN by the isolation package and counted when metrics are
// wired. Non-administrators under those prefixes pass through unbound.
//
// # Errors
//
//   - ErrTenantNotFound: tenant does not exist or is hidden by policy
//   - ErrTenantContextMissing: authenticated request with no derivable tenant
//   - ErrTenantSuspended / ErrTenantPendingDeletion: lifecycle rejections
//   - ErrNoTenantInContext: RequireTenant guard tripped
//
// Custom error handlers can be configured via WithErrorHandler; the
// default writes the JSON bodies the platform's clients expect.
package tenant
