package store

import (
	"context"
	"fmt"

	"aidconnect/pkg/types"
)

// RequestRepository reads and mutates the aid request collection.
type RequestRepository struct {
	col Collection[types.AidRequest]
}

func NewRequestRepository(col Collection[types.AidRequest]) *RequestRepository {
	return &RequestRepository{col: col}
}

func (r *RequestRepository) All(ctx context.Context) ([]types.AidRequest, error) {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*types.AidRequest, error) {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	for i := range requests {
		if requests[i].ID == id {
			return &requests[i], nil
		}
	}

	return nil, types.ErrRequestNotFound
}

func (r *RequestRepository) Append(ctx context.Context, request types.AidRequest) error {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load requests: %w", err)
	}

	requests = append(requests, request)

	if err := r.col.SaveAll(ctx, requests); err != nil {
		return fmt.Errorf("save requests: %w", err)
	}
	return nil
}

// Update replaces the record whose ID matches request.ID.
func (r *RequestRepository) Update(ctx context.Context, request types.AidRequest) error {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load requests: %w", err)
	}

	for i := range requests {
		if requests[i].ID == request.ID {
			requests[i] = request
			if err := r.col.SaveAll(ctx, requests); err != nil {
				return fmt.Errorf("save requests: %w", err)
			}
			return nil
		}
	}

	return types.ErrRequestNotFound
}

func (r *RequestRepository) DeleteAt(ctx context.Context, index int) error {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load requests: %w", err)
	}

	if index < 0 || index >= len(requests) {
		return types.ErrRequestNotFound
	}

	requests = append(requests[:index], requests[index+1:]...)

	if err := r.col.SaveAll(ctx, requests); err != nil {
		return fmt.Errorf("save requests: %w", err)
	}
	return nil
}

func (r *RequestRepository) DeleteByID(ctx context.Context, id string) error {
	requests, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load requests: %w", err)
	}

	for i := range requests {
		if requests[i].ID == id {
			requests = append(requests[:i], requests[i+1:]...)
			if err := r.col.SaveAll(ctx, requests); err != nil {
				return fmt.Errorf("save requests: %w", err)
			}
			return nil
		}
	}

	return types.ErrRequestNotFound
}
