package store

import "context"

// Collection is the persistence surface for a single record collection.
// LoadAll returns the full persisted document and SaveAll replaces it.
// There are no partial writes: a collection is always rewritten whole.
type Collection[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
	SaveAll(ctx context.Context, records []T) error
}
