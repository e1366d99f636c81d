// Package pg bootstraps the PostgreSQL layer: pooled connectivity via
// pgx/v5, schema migrations via goose/v3, a health check closure, and
// classifiers for the Postgres errors the platform branches on.
//
// Config is populated from PG_* environment variables. Connect opens a
// *pgxpool.Pool with startup retries; Migrate applies the SQL migrations
// under Config.MigrationsPath, routing goose output through the application
// logger.
//
// The error helpers wrap the SQLSTATE checks used across repositories:
// IsNotFoundError (pgx.ErrNoRows), IsDuplicateKeyError (23505),
// IsForeignKeyViolationError (23503) and IsRLSDeniedError (42501, raised
// when a write violates a row-level security policy).
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg
