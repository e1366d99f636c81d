package inventory

import "errors"

var (
	// ErrItemNotFound is returned when no visible row matches the item id.
	// Another tenant's item produces this too: row-level security hides
	// the row entirely, so the repository cannot tell the cases apart.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrSKUTaken is returned when the tenant already has an item with
	// the requested SKU.
	ErrSKUTaken = errors.New("sku already in use")

	// ErrQuantityBelowZero is returned when an adjustment would drive the
	// stock count negative.
	ErrQuantityBelowZero = errors.New("quantity cannot go below zero")

	// ErrNoSession is returned when the context carries no bound
	// isolation session. Inventory queries never run on a shared pool.
	ErrNoSession = errors.New("inventory: no isolation session in context")
)
