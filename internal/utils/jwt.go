package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/model"
)

// Claims is the payload embedded in every token this service issues.
// The same shape is used for access, refresh and password-reset tokens;
// which secret signs it decides what the token is good for.
type Claims struct {
	UserID uint64     `json:"uid"`
	Role   model.Role `json:"role"`
	Name   string     `json:"name,omitempty"`
	Email  string     `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 JWT for the given claims. Issued-at and expiry
// are set here from the current UTC time and ttl; the caller picks the
// secret (access, refresh or reset) and thereby the token variant.
func NewToken(secret string, userID uint64, role model.Role, name, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Name:   name,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewTokenWithID is NewToken plus a caller-supplied token ID (jti).
// Password-reset tokens carry one so a consumption ledger can enforce
// single use.
func NewTokenWithID(secret, tokenID string, userID uint64, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the decoded
// claims. Only HMAC-signed tokens are accepted, so a token produced
// with a different algorithm (or another variant's secret) always
// fails. Expired tokens are reported distinctly from malformed or
// forged ones.
func ParseToken(raw, secret string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.TokenExpired()
		}
		return nil, apperr.Wrap(apperr.KindTokenInvalid, "invalid token", err)
	}
	if !tok.Valid {
		return nil, apperr.TokenInvalid("invalid token")
	}
	return claims, nil
}
