package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns a hex string built from n bytes of cryptographically
// secure random data. Used for password-reset token IDs.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
