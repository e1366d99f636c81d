// Package isolation binds database connections to a tenant for row-level
// security enforcement. It is the only surface through which isolation state
// may be manipulated; repositories never touch the session settings directly.
//
// State lives on the PostgreSQL connection as two session settings,
// app.current_tenant and app.bypass_rls, which the RLS policies attached to
// every tenant-scoped table consult at query time. Values written on one
// connection are invisible to every other connection, so concurrent requests
// cannot observe each other's tenant binding.
//
// # Architecture
//
// A Store holds the two per-connection values. PgStore is the production
// implementation over a single pinned connection; MemoryStore backs tests.
// A Session wraps a Store with the context API: set/get/clear tenant,
// enable/disable bypass, and the scoped helpers WithTenant and WithBypass
// that save the current state on entry and restore it on every exit path.
// A Binder pins a connection for the duration of a request and returns a
// ReleaseFunc that clears isolation state before the connection can be
// reused.
//
//	binder := isolation.NewPoolBinder(pool)
//	sess, release, err := binder.Bind(ctx)
//	if err != nil { ... }
//	defer release()
//
//	ctx = isolation.WithSession(ctx, sess)
//	if err := sess.SetTenant(ctx, tenantID); err != nil { ... }
//
//	// Repositories read the pinned connection back out of the context.
//	q, ok := isolation.QuerierFromContext(ctx)
//
// # Fail-closed semantics
//
// Nothing here validates that a tenant exists or is usable; that is the
// request middleware's job. Binding a nonexistent tenant simply makes every
// tenant-scoped query return no rows. With no tenant bound and bypass off,
// tenant-scoped tables are empty as far as the connection is concerned.
//
// Any failure to read or write isolation state wraps ErrStoreUnavailable and
// is fatal for the unit of work: if the state cannot be established the
// policies cannot be trusted to evaluate correctly, so operations are never
// retried and a connection whose state cannot be cleared is destroyed
// instead of returned to the pool.
package isolation
