package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileCollection persists one collection as a flat JSON array on disk. The
// mutex serializes access per collection so concurrent SaveAll calls cannot
// interleave, and writes go through a temp file plus rename so a reader
// never observes a torn document.
type FileCollection[T any] struct {
	path string
	mu   sync.Mutex
}

func NewFileCollection[T any](path string) *FileCollection[T] {
	return &FileCollection[T]{path: path}
}

func (c *FileCollection[T]) LoadAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.path, err)
	}
	if records == nil {
		records = []T{}
	}

	return records, nil
}

func (c *FileCollection[T]) SaveAll(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", c.path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file for %s: %w", c.path, err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection %s: %w", c.path, err)
	}

	return nil
}
