// Package store provides persistence for the product and sale collections.
package store

import "context"

// ProductStore is an interface for product collection storage.
// It abstracts the underlying data store, allowing for different implementations (e.g., file, in-memory).
type ProductStore interface {
	// Load returns the whole product collection in storage order.
	// Returns an empty slice if nothing has been persisted yet.
	// Returns an empty slice and an error wrapping ErrMalformedData if the persisted data cannot be parsed.
	Load(ctx context.Context) ([]Product, error)

	// Save replaces the whole persisted product collection.
	Save(ctx context.Context, products []Product) error
}

// SaleStore is an interface for sale collection storage.
type SaleStore interface {
	// Load returns the whole sale collection in storage order.
	// Same empty and malformed semantics as ProductStore.Load.
	Load(ctx context.Context) ([]Sale, error)

	// Save replaces the whole persisted sale collection.
	Save(ctx context.Context, sales []Sale) error
}
