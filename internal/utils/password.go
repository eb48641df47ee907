package utils

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordChangedAfter reports whether the password was changed strictly
// after a token's issued-at time. JWT iat has second granularity, so the
// change timestamp is truncated to seconds before comparing; a nil
// changedAt means the password was never changed.
func PasswordChangedAfter(changedAt *time.Time, issuedAtUnix int64) bool {
	if changedAt == nil {
		return false
	}
	return changedAt.Unix() > issuedAtUnix
}
