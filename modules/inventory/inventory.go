package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item is a stock record of a single jewelry piece or product line.
// Rows belong to the tenant bound on the connection that reads them;
// the owning tenant never appears in the API surface.
type Item struct {
	ID         uuid.UUID `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Metal      string    `json:"metal"`
	Carat      float64   `json:"carat"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddItemParams carries the fields needed to register a new stock item.
type AddItemParams struct {
	SKU        string
	Name       string
	Metal      string
	Carat      float64
	PriceCents int64
	Quantity   int32
}

// Storage defines the data operations the inventory endpoints need.
type Storage interface {
	List(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, params AddItemParams) (*Item, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int32) (*Item, error)
}
