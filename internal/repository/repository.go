package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.
)

// DefaultSlotKey is the key the workout list is stored under.
const DefaultSlotKey = "workouts"

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SlotRepository is a durable key-value store holding opaque blobs.
// The workout store keeps its whole serialized list under one key.
type SlotRepository interface {
	// Get returns the value stored under key, or ErrNotFound if the slot is empty.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete erases key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
