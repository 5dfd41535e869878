package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecurePassword returns a random URL-safe password of at least 8 characters
func GenerateSecurePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}
