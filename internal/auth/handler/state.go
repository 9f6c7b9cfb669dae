package handler

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// generateState returns an unguessable CSRF token for the OAuth redirect.
// 32 bytes = 256 bits of entropy.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
