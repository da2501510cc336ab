package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idSize     = 21
	nonceSize  = 32
)

// NanoID returns a collision-resistant identifier for new records.
func NanoID() string {
	return gonanoid.MustGenerate(idAlphabet, idSize)
}

// Nonce returns a longer identifier used for password reset nonces.
func Nonce() string {
	return gonanoid.MustGenerate(idAlphabet, nonceSize)
}
