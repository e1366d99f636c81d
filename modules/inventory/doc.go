// Package inventory is the sample tenant-scoped feature module.
//
// It demonstrates the data-access contract every downstream module
// follows: repositories obtain their connection exclusively through
// isolation.QuerierFromContext, statements carry no tenant filters, and
// inserts stamp ownership server-side with app_current_tenant(). The
// row-level security policies on the inventory tables do all scoping,
// so a handler that forgot a WHERE clause would still only ever see the
// bound tenant's rows.
package inventory
