package store

import (
	"context"
	"fmt"

	"aidconnect/pkg/types"
)

// NGORepository reads and mutates the NGO collection. Every operation
// reloads the backing collection; no state is retained between calls.
type NGORepository struct {
	col Collection[types.NGO]
}

func NewNGORepository(col Collection[types.NGO]) *NGORepository {
	return &NGORepository{col: col}
}

func (r *NGORepository) All(ctx context.Context) ([]types.NGO, error) {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ngos: %w", err)
	}
	return ngos, nil
}

func (r *NGORepository) FindByUsername(ctx context.Context, username string) (*types.NGO, error) {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ngos: %w", err)
	}

	for i := range ngos {
		if ngos[i].Username == username {
			return &ngos[i], nil
		}
	}

	return nil, types.ErrNGONotFound
}

func (r *NGORepository) FindByEmail(ctx context.Context, email string) (*types.NGO, error) {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ngos: %w", err)
	}

	for i := range ngos {
		if ngos[i].Email == email {
			return &ngos[i], nil
		}
	}

	return nil, types.ErrNGONotFound
}

// Exists reports whether any record already carries the username or the
// email. Registration must reject duplicates of either.
func (r *NGORepository) Exists(ctx context.Context, username, email string) (bool, error) {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load ngos: %w", err)
	}

	for i := range ngos {
		if ngos[i].Username == username || ngos[i].Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *NGORepository) Append(ctx context.Context, ngo types.NGO) error {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ngos: %w", err)
	}

	ngos = append(ngos, ngo)

	if err := r.col.SaveAll(ctx, ngos); err != nil {
		return fmt.Errorf("save ngos: %w", err)
	}
	return nil
}

func (r *NGORepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ngos: %w", err)
	}

	for i := range ngos {
		if ngos[i].Username == username {
			ngos[i].Password = passwordHash
			if err := r.col.SaveAll(ctx, ngos); err != nil {
				return fmt.Errorf("save ngos: %w", err)
			}
			return nil
		}
	}

	return types.ErrNGONotFound
}

func (r *NGORepository) DeleteAt(ctx context.Context, index int) error {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ngos: %w", err)
	}

	if index < 0 || index >= len(ngos) {
		return types.ErrNGONotFound
	}

	ngos = append(ngos[:index], ngos[index+1:]...)

	if err := r.col.SaveAll(ctx, ngos); err != nil {
		return fmt.Errorf("save ngos: %w", err)
	}
	return nil
}

func (r *NGORepository) DeleteByUsername(ctx context.Context, username string) error {
	ngos, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ngos: %w", err)
	}

	for i := range ngos {
		if ngos[i].Username == username {
			ngos = append(ngos[:i], ngos[i+1:]...)
			if err := r.col.SaveAll(ctx, ngos); err != nil {
				return fmt.Errorf("save ngos: %w", err)
			}
			return nil
		}
	}

	return types.ErrNGONotFound
}
