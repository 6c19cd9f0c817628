// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product record in the collection.
// The identifier is a five-digit zero-padded code and is immutable after
// creation. JSON field names match the on-disk collection document.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Status      bool     `json:"status"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// NewProduct carries the fields of a product to be created. The store
// assigns the identifier.
type NewProduct struct {
	Title       string
	Description string
	Code        string
	Status      bool
	Price       float64
	Stock       int
	Category    string
	Thumbnails  []string
}

// ProductUpdate carries a partial update. Nil fields are left untouched;
// the identifier cannot be changed.
type ProductUpdate struct {
	Title       *string
	Description *string
	Code        *string
	Status      *bool
	Price       *float64
	Stock       *int
	Category    *string
	Thumbnails  []string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, file-backed).
type ProductStore interface {
	// FindAll returns all products in collection order. A limit greater
	// than zero truncates the result; any other limit returns the full
	// collection.
	FindAll(ctx context.Context, limit int) ([]Product, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// Create adds a new product, assigns it an identifier and persists the
	// collection. Returns the stored product.
	Create(ctx context.Context, p NewProduct) (*Product, error)

	// Update merges the non-nil fields of upd onto an existing product and
	// persists the collection.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, upd ProductUpdate) (*Product, error)

	// DeleteByID removes a product and persists the collection.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}
