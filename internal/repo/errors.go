package repo

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStaleStatus is returned by compare-and-swap status updates when the
	// order exists but its status no longer matches the expected one.
	ErrStaleStatus = errors.New("order status changed concurrently")
)
