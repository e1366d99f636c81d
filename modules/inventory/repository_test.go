package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/modules/inventory"
	"github.com/atelierhq/atelier/pkg/isolation"
)

// scanItem feeds Scan destinations from an Item fixture, mirroring the
// column order every repository statement returns.
func scanItem(it *inventory.Item, dest []any) {
	*dest[0].(*uuid.UUID) = it.ID
	*dest[1].(*string) = it.SKU
	*dest[2].(*string) = it.Name
	*dest[3].(*string) = it.Metal
	*dest[4].(*float64) = it.Carat
	*dest[5].(*int64) = it.PriceCents
	*dest[6].(*int32) = it.Quantity
	*dest[7].(*time.Time) = it.CreatedAt
	*dest[8].(*time.Time) = it.UpdatedAt
}

// itemRow is a single-row pgx.Row over an Item fixture.
type itemRow struct {
	item *inventory.Item
	err  error
}

func (r itemRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	scanItem(r.item, dest)
	return nil
}

// itemRows is a pgx.Rows over a fixed slice of Item fixtures.
type itemRows struct {
	items []inventory.Item
	idx   int
	err   error
}

func (r *itemRows) Close()                                       {}
func (r *itemRows) Err() error                                   { return r.err }
func (r *itemRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *itemRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *itemRows) Values() ([]any, error)                       { return nil, nil }
func (r *itemRows) RawValues() [][]byte                          { return nil }
func (r *itemRows) Conn() *pgx.Conn                              { return nil }

func (r *itemRows) Next() bool {
	if r.err != nil || r.idx >= len(r.items) {
		return false
	}
	r.idx++
	return true
}

func (r *itemRows) Scan(dest ...any) error {
	scanItem(&r.items[r.idx-1], dest)
	return nil
}

// stockConn fakes the pinned connection the repository queries through.
type stockConn struct {
	items    []inventory.Item
	row      itemRow
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (c *stockConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (c *stockConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.lastSQL = sql
	c.lastArgs = args
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &itemRows{items: c.items}, nil
}

func (c *stockConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.lastSQL = sql
	c.lastArgs = args
	return c.row
}

func stockContext(t *testing.T, conn *stockConn) context.Context {
	t.Helper()
	sess := isolation.NewSession(isolation.NewMemoryStore(), isolation.WithQuerier(conn))
	return isolation.WithSession(context.Background(), sess)
}

func fixtureItem() inventory.Item {
	return inventory.Item{
		ID:         uuid.New(),
		SKU:        "RING-AU750-001",
		Name:       "Rose gold solitaire ring",
		Metal:      "gold",
		Carat:      0.75,
		PriceCents: 249900,
		Quantity:   3,
		CreatedAt:  time.Now().Add(-time.Hour).Truncate(time.Second),
		UpdatedAt:  time.Now().Truncate(time.Second),
	}
}

func TestRepository_List(t *testing.T) {
	t.Parallel()

	t.Run("returns items without tenant filtering", func(t *testing.T) {
		t.Parallel()

		first := fixtureItem()
		second := fixtureItem()
		second.SKU = "NECK-AG925-002"
		conn := &stockConn{items: []inventory.Item{first, second}}

		items, err := inventory.NewRepository().List(stockContext(t, conn))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, first.SKU, items[0].SKU)
		assert.Equal(t, second.SKU, items[1].SKU)

		// Scoping is the database's job: the statement must not mention
		// the tenant column at all.
		assert.Contains(t, conn.lastSQL, "FROM inventory_items")
		assert.NotContains(t, strings.ToLower(conn.lastSQL), "tenant_id")
	})

	t.Run("empty partition yields no rows", func(t *testing.T) {
		t.Parallel()

		conn := &stockConn{}
		items, err := inventory.NewRepository().List(stockContext(t, conn))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		conn := &stockConn{queryErr: cause}

		_, err := inventory.NewRepository().List(stockContext(t, conn))
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("requires isolation session", func(t *testing.T) {
		t.Parallel()

		_, err := inventory.NewRepository().List(context.Background())
		assert.ErrorIs(t, err, inventory.ErrNoSession)
	})
}

func TestRepository_Add(t *testing.T) {
	t.Parallel()

	t.Run("stamps ownership server side", func(t *testing.T) {
		t.Parallel()

		want := fixtureItem()
		conn := &stockConn{row: itemRow{item: &want}}

		got, err := inventory.NewRepository().Add(stockContext(t, conn), inventory.AddItemParams{
			SKU:        want.SKU,
			Name:       want.Name,
			Metal:      want.Metal,
			Carat:      want.Carat,
			PriceCents: want.PriceCents,
			Quantity:   want.Quantity,
		})
		require.NoError(t, err)
		assert.Equal(t, want.SKU, got.SKU)

		// The tenant value comes from the connection's isolation state,
		// never from an argument.
		assert.Contains(t, conn.lastSQL, "app_current_tenant()")
		require.Len(t, conn.lastArgs, 7)
		assert.Equal(t, want.SKU, conn.lastArgs[1])
		_, isID := conn.lastArgs[0].(uuid.UUID)
		assert.True(t, isID, "first argument should be the generated item id")
	})

	t.Run("duplicate sku", func(t *testing.T) {
		t.Parallel()

		conn := &stockConn{row: itemRow{err: &pgconn.PgError{Code: "23505"}}}

		_, err := inventory.NewRepository().Add(stockContext(t, conn), inventory.AddItemParams{
			SKU: "RING-AU750-001", Name: "Duplicate",
		})
		assert.ErrorIs(t, err, inventory.ErrSKUTaken)
	})

	t.Run("requires isolation session", func(t *testing.T) {
		t.Parallel()

		_, err := inventory.NewRepository().Add(context.Background(), inventory.AddItemParams{})
		assert.ErrorIs(t, err, inventory.ErrNoSession)
	})
}

func TestRepository_AdjustQuantity(t *testing.T) {
	t.Parallel()

	t.Run("returns updated row", func(t *testing.T) {
		t.Parallel()

		want := fixtureItem()
		want.Quantity = 5
		conn := &stockConn{row: itemRow{item: &want}}

		got, err := inventory.NewRepository().AdjustQuantity(stockContext(t, conn), want.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, int32(5), got.Quantity)
		assert.Equal(t, []any{want.ID, int32(2)}, conn.lastArgs)
	})

	t.Run("invisible row reads as not found", func(t *testing.T) {
		t.Parallel()

		conn := &stockConn{row: itemRow{err: pgx.ErrNoRows}}

		_, err := inventory.NewRepository().AdjustQuantity(stockContext(t, conn), uuid.New(), 1)
		assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	})

	t.Run("negative stock is rejected by constraint", func(t *testing.T) {
		t.Parallel()

		conn := &stockConn{row: itemRow{err: &pgconn.PgError{Code: "23514"}}}

		_, err := inventory.NewRepository().AdjustQuantity(stockContext(t, conn), uuid.New(), -10)
		assert.ErrorIs(t, err, inventory.ErrQuantityBelowZero)
	})

	t.Run("requires isolation session", func(t *testing.T) {
		t.Parallel()

		_, err := inventory.NewRepository().AdjustQuantity(context.Background(), uuid.New(), 1)
		assert.ErrorIs(t, err, inventory.ErrNoSession)
	})
}
