package store

import (
	"context"
	"fmt"

	"aidconnect/pkg/types"
)

// ResetTokenRepository holds outstanding password reset nonces.
type ResetTokenRepository struct {
	col Collection[types.ResetToken]
}

func NewResetTokenRepository(col Collection[types.ResetToken]) *ResetTokenRepository {
	return &ResetTokenRepository{col: col}
}

func (r *ResetTokenRepository) Put(ctx context.Context, token types.ResetToken) error {
	tokens, err := r.col.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load reset tokens: %w", err)
	}

	tokens = append(tokens, token)

	if err := r.col.SaveAll(ctx, tokens); err != nil {
		return fmt.Errorf("save reset tokens: %w", err)
	}
	return nil
}

// Take removes and returns the record for nonce. A nonce can only ever be
// taken once; a second call reports an invalid token.
func (r *ResetTokenRepository) Take(ctx context.Context, nonce string) (*types.ResetToken, error) {
	tokens, err := r.col.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reset tokens: %w", err)
	}

	for i := range tokens {
		if tokens[i].Nonce == nonce {
			token := tokens[i]
			tokens = append(tokens[:i], tokens[i+1:]...)
			if err := r.col.SaveAll(ctx, tokens); err != nil {
				return nil, fmt.Errorf("save reset tokens: %w", err)
			}
			return &token, nil
		}
	}

	return nil, types.ErrResetTokenInvalid
}
