package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("postgres ping failed")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
	ErrMigrationsDirNotFound    = errors.New("migrations directory not found")
	ErrMigrationPathNotProvided = errors.New("migration path not provided")
)

// SQLSTATE codes this package classifies. Repositories map them onto their
// own error taxonomy instead of inspecting driver errors themselves.
const (
	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeCheckViolation        = "23514"
	codeInsufficientPrivilege = "42501"
)

// sqlState reports whether err carries the given SQLSTATE code.
func sqlState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsNotFoundError reports pgx.ErrNoRows, the uniform "no such row" signal.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTxClosedError reports attempts to use a finished transaction.
func IsTxClosedError(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}

// IsDuplicateKeyError reports unique violations, e.g. a tenant slug that is
// already taken.
func IsDuplicateKeyError(err error) bool {
	return sqlState(err, codeUniqueViolation)
}

// IsForeignKeyViolationError reports referential integrity violations, e.g.
// deleting a tenant that still owns rows.
func IsForeignKeyViolationError(err error) bool {
	return sqlState(err, codeForeignKeyViolation)
}

// IsCheckViolationError reports CHECK constraint violations, e.g. adjusting
// an inventory quantity below zero.
func IsCheckViolationError(err error) bool {
	return sqlState(err, codeCheckViolation)
}

// IsRLSDeniedError reports row-level security denials (insufficient_privilege).
// Postgres raises the code when an INSERT or UPDATE produces a row that
// violates a table's policy: writes into another tenant's partition fail
// loudly with this code, while out-of-partition reads just see zero rows.
func IsRLSDeniedError(err error) bool {
	return sqlState(err, codeInsufficientPrivilege)
}
