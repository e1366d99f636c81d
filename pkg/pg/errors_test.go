package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/atelierhq/atelier/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("scan item: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(nil))
	assert.False(t, pg.IsNotFoundError(errors.New("boom")))
}

func TestIsTxClosedError(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
	assert.False(t, pg.IsTxClosedError(nil))
	assert.False(t, pg.IsTxClosedError(pgx.ErrNoRows))
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_key"}
	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.True(t, pg.IsDuplicateKeyError(fmt.Errorf("create tenant: %w", dup)))
	assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsDuplicateKeyError(nil))
}

func TestIsForeignKeyViolationError(t *testing.T) {
	t.Parallel()

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "inventory_items_tenant_id_fkey"}
	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsForeignKeyViolationError(nil))
}

func TestIsRLSDeniedError(t *testing.T) {
	t.Parallel()

	denied := &pgconn.PgError{
		Code:    "42501",
		Message: `new row violates row-level security policy for table "inventory_items"`,
	}
	assert.True(t, pg.IsRLSDeniedError(denied))
	assert.True(t, pg.IsRLSDeniedError(fmt.Errorf("insert item: %w", denied)))
	assert.False(t, pg.IsRLSDeniedError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsRLSDeniedError(errors.New("not a pg error")))
	assert.False(t, pg.IsRLSDeniedError(nil))
}
