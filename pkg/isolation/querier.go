package isolation

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the query surface repositories run tenant-scoped SQL through.
// It is satisfied by *pgxpool.Conn, *pgx.Conn and pgx.Tx, and deliberately
// excludes pool types: isolation state lives on a single connection, and a
// pool would route statements onto connections with no bound state.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
