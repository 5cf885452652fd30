// Package crypto provides cryptographic utilities for HBnB.
package crypto

import (
	"crypto/rand"
	"fmt"
)

// secretChars contains characters used in generated signing secrets.
const secretChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// DefaultSecretLength is the length of secrets produced for JWT signing.
const DefaultSecretLength = 48

// GenerateSecret generates a random alphanumeric secret of the given length.
// Suitable as an HS256 signing key.
func GenerateSecret(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid secret length %d", length)
	}
	return generateRandomString(length, secretChars)
}

// generateRandomString generates a random string of the specified length
// using characters from the provided character set.
func generateRandomString(length int, charset string) (string, error) {
	result := make([]byte, length)
	charsetLen := len(charset)

	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// charset has 64 entries, so the modulo is unbiased.
	for i := 0; i < length; i++ {
		result[i] = charset[int(randomBytes[i])%charsetLen]
	}

	return string(result), nil
}
