package store

import (
	"context"
	"sync"
)

// MemoryCollection is an in-memory Collection used by tests in place of the
// file-backed store.
type MemoryCollection[T any] struct {
	mu      sync.Mutex
	records []T
}

func NewMemoryCollection[T any]() *MemoryCollection[T] {
	return &MemoryCollection[T]{}
}

func (c *MemoryCollection[T]) LoadAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.records))
	copy(out, c.records)
	return out, nil
}

func (c *MemoryCollection[T]) SaveAll(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]T, len(records))
	copy(c.records, records)
	return nil
}
