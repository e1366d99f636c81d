// Package audit records privileged operations as structured events.
//
// Every action performed with row-level security bypassed (tenant
// provisioning, suspension, reinstatement, deletion scheduling) leaves an
// audit trail naming the acting user, the affected tenant, and the outcome.
// Actor and correlation fields are pulled from the request context via
// configurable extractors, so call sites only name the action and resource:
//
//	auditor := audit.NewLogger(audit.NewSlogStorage(log),
//		audit.WithTenantIDExtractor(tenantID),
//		audit.WithUserIDExtractor(userID),
//	)
//
//	_ = auditor.Log(ctx, "tenant.suspend", audit.WithResource("tenant", id.String()))
//
// Two storage backends ship with the package: MemoryStorage for tests and
// SlogStorage, which emits one structured log record per event.
package audit
