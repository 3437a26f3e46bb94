// Package errors provides custom error types for product and sale operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateProduct = errors.New("product already exists")
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrMalformedData is returned by stores when a persisted collection exists but cannot be parsed.
// The accompanying collection is empty and callers may continue with it.
var ErrMalformedData = errors.New("malformed persisted data")

var ErrInvalidInput = errors.New("invalid input")

// ErrPartialCommit means a sale was written to the sales collection but the product
// collection could not be updated, and the sales collection could not be restored.
var ErrPartialCommit = errors.New("sale recorded without stock update")
