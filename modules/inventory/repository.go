package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/pg"
)

// Repository reads and writes inventory rows through the isolation
// session's pinned connection. No statement filters by tenant: the
// row-level security policies on inventory_items scope every query to
// the tenant bound on the connection, and inserts stamp the owning
// tenant server-side via app_current_tenant().
type Repository struct{}

// NewRepository creates a repository backed by the isolation session in ctx.
func NewRepository() *Repository {
	return &Repository{}
}

const (
	listItemsQuery = `SELECT id, sku, name, metal, carat, price_cents, quantity, created_at, updated_at
		FROM inventory_items
		ORDER BY created_at DESC, id`

	insertItemQuery = `INSERT INTO inventory_items (id, tenant_id, sku, name, metal, carat, price_cents, quantity)
		VALUES ($1, app_current_tenant(), $2, $3, $4, $5, $6, $7)
		RETURNING id, sku, name, metal, carat, price_cents, quantity, created_at, updated_at`

	adjustQuantityQuery = `UPDATE inventory_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING id, sku, name, metal, carat, price_cents, quantity, created_at, updated_at`
)

// List returns the bound tenant's items, newest first. An unbound
// connection sees no rows at all, so the empty result is the fail-closed
// default rather than an error.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	rows, err := q.Query(ctx, listItemsQuery)
	if err != nil {
		return nil, errors.Join(errors.New("inventory: list failed"), err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Name, &it.Metal, &it.Carat,
			&it.PriceCents, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, errors.Join(errors.New("inventory: list failed"), err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(errors.New("inventory: list failed"), err)
	}

	return items, nil
}

// Add registers a new stock item for the bound tenant. The tenant column
// is filled by the database from the connection's isolation state, so the
// caller cannot write into another tenant's partition even by mistake.
func (r *Repository) Add(ctx context.Context, params AddItemParams) (*Item, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var it Item
	err := q.QueryRow(ctx, insertItemQuery,
		uuid.New(), params.SKU, params.Name, params.Metal, params.Carat, params.PriceCents, params.Quantity,
	).Scan(
		&it.ID, &it.SKU, &it.Name, &it.Metal, &it.Carat,
		&it.PriceCents, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrSKUTaken
		}
		return nil, errors.Join(errors.New("inventory: add failed"), err)
	}

	return &it, nil
}

// AdjustQuantity applies a signed delta to an item's stock count and
// returns the updated row. Items outside the bound tenant's partition are
// indistinguishable from missing ones.
func (r *Repository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int32) (*Item, error) {
	q, ok := isolation.QuerierFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	var it Item
	err := q.QueryRow(ctx, adjustQuantityQuery, id, delta).Scan(
		&it.ID, &it.SKU, &it.Name, &it.Metal, &it.Carat,
		&it.PriceCents, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		switch {
		case pg.IsNotFoundError(err):
			return nil, ErrItemNotFound
		case pg.IsCheckViolationError(err):
			return nil, ErrQuantityBelowZero
		}
		return nil, errors.Join(errors.New("inventory: adjust failed"), err)
	}

	return &it, nil
}
