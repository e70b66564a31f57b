package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes gives 256 bits of entropy per session token
const tokenBytes = 32

// NewToken returns a fresh URL safe opaque session token
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
