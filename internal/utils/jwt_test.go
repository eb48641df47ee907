package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	raw, err := NewToken("access-secret", 42, model.RoleCustomer, "Jamie", "jamie@example.com", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseToken(raw, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, model.RoleCustomer, claims.Role)
	assert.Equal(t, "Jamie", claims.Name)
	assert.Equal(t, "jamie@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	raw, err := NewToken("refresh-secret", 1, model.RoleAdmin, "", "", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(raw, "access-secret")
	require.Error(t, err)
	assert.Equal(t, apperr.KindTokenInvalid, apperr.KindOf(err))
}

func TestParseTokenRejectsExpired(t *testing.T) {
	raw, err := NewToken("s", 1, model.RoleCustomer, "", "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(raw, "s")
	require.Error(t, err)
	assert.Equal(t, apperr.KindTokenExpired, apperr.KindOf(err))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.jwt", "s")
	require.Error(t, err)
	assert.Equal(t, apperr.KindTokenInvalid, apperr.KindOf(err))
}

func TestNewTokenWithIDCarriesJTI(t *testing.T) {
	raw, err := NewTokenWithID("s", "reset-123", 7, model.RoleProvider, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(raw, "s")
	require.NoError(t, err)
	assert.Equal(t, "reset-123", claims.ID)
	assert.Equal(t, uint64(7), claims.UserID)
}

func TestAccessAndRefreshTokensAreDistinct(t *testing.T) {
	access, err := NewToken("access-secret", 9, model.RoleCustomer, "a", "a@b.com", time.Minute)
	require.NoError(t, err)
	refresh, err := NewToken("refresh-secret", 9, model.RoleCustomer, "a", "a@b.com", time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, access, refresh)

	// Each variant only verifies against its own secret.
	_, err = ParseToken(access, "refresh-secret")
	assert.Error(t, err)
	_, err = ParseToken(refresh, "access-secret")
	assert.Error(t, err)
}
