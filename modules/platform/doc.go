// Package platform is the administrative surface over the tenant
// registry: directory listing, provisioning, suspension, reinstatement
// and deletion marking.
//
// It is the canonical consumer of scoped bypass. The registry is
// row-secured like every tenant table, so each operation wraps its
// statements in Session.WithBypass: the privilege window opens for one
// operation and closes with it, whatever the middleware did around the
// request. Mutations record audit events carrying the acting user and
// request id from context.
package platform
