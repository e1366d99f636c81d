// Package logger builds context-aware slog loggers for the platform.
//
// New creates a *slog.Logger from functional options: output format (text
// or JSON), minimum level, static attributes, and per-environment presets
// (WithDevelopment, WithStaging, WithProduction). Registered
// ContextExtractor callbacks run on every record, so request-scoped values
// like the request id, tenant id and principal appear on log lines without
// explicit plumbing at call sites.
//
// Attribute constructors (Error, TenantID, UserID, RequestID, ...) keep key
// naming consistent across the codebase; the error helpers return an empty
// Attr for nil errors so callers need no nil checks.
//
//	log := logger.New(
//	    logger.WithProduction("atelier"),
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	        tenant.LoggerExtractor(),
//	    ),
//	)
//	log.InfoContext(ctx, "inventory updated", logger.TenantID(id))
package logger
