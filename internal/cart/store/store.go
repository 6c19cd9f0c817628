// Package store provides an interface for cart storage operations.
package store

import "context"

// Cart is one shopping cart: a monotonically assigned integer identifier
// and an ordered sequence of lines.
type Cart struct {
	ID       int    `json:"id"`
	Products []Line `json:"products"`
}

// Line is one entry in a cart. Two shapes share the struct and are kept
// apart by omitempty: a snapshot line carries its own copy of the product
// fields and no quantity, a reference line carries only the referenced
// product identifier and a quantity. Both shapes may coexist in one cart.
type Line struct {
	ID          int     `json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// SnapshotItem carries the product fields copied into a snapshot line when
// a cart is created from a supplied product list.
type SnapshotItem struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// CartStore is an interface for cart storage operations.
type CartStore interface {
	// FindAll returns all carts in collection order.
	FindAll(ctx context.Context) ([]Cart, error)

	// FindByID retrieves a cart by its identifier.
	// Returns ErrCartNotFound if no cart exists with the given ID.
	FindByID(ctx context.Context, id int) (*Cart, error)

	// Create builds a new cart from the supplied items. Each item becomes
	// a snapshot line with a position-based identifier starting at 1. The
	// cart identifier is assigned sequentially.
	Create(ctx context.Context, items []SnapshotItem) (*Cart, error)

	// AddLine adds the product to the cart, or bumps the quantity of the
	// line already referencing it. Persists and returns the full cart.
	// Returns ErrCartNotFound if no cart exists with the given ID.
	AddLine(ctx context.Context, cartID, productID int) (*Cart, error)
}
