package account

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"aidconnect/pkg/types"
)

// Reset tokens are "<nonce>.<signature>" where the signature is an
// HMAC-SHA256 of the nonce under the configured secret. The signature
// prevents forging a lookup against the nonce store; the nonce itself
// carries no identity.

func signToken(nonce, secret string) string {
	return nonce + "." + sign(nonce, secret)
}

func verifyToken(token, secret string) (string, error) {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return "", types.ErrResetTokenInvalid
	}

	if !hmac.Equal([]byte(sig), []byte(sign(nonce, secret))) {
		return "", types.ErrResetTokenInvalid
	}

	return nonce, nil
}

func sign(nonce, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(nonce))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}
