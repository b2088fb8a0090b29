// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create adds a new product with availability defaulted to true.
	// The store assigns the ID. Returns error if the product cannot be created.
	Create(ctx context.Context, name string, price float64) (*Product, error)

	// Update replaces an existing product's name, price and availability.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, name string, price float64, availability bool) (*Product, error)

	// ToggleAvailability flips the availability flag of a product atomically.
	// Returns ErrProductNotFound if no product exists with the given ID.
	ToggleAvailability(ctx context.Context, id int64) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
