package types

import "time"

// ResetToken is the server-side half of a password reset link. The nonce is
// random, the record is deleted on redemption, and ExpiresAt bounds the
// link's lifetime.
type ResetToken struct {
	Nonce     string    `json:"nonce"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
