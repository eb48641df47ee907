package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{DuplicateEmail("email already exists"), http.StatusConflict},
		{NotFound("user not found"), http.StatusNotFound},
		{Blocked("account blocked"), http.StatusForbidden},
		{Forbidden("forbidden"), http.StatusForbidden},
		{InvalidCredentials(), http.StatusUnauthorized},
		{Unauthenticated("missing token"), http.StatusUnauthorized},
		{TokenInvalid("bad signature"), http.StatusUnauthorized},
		{TokenExpired(), http.StatusUnauthorized},
		{StaleToken(), http.StatusUnauthorized},
		{Internal(errors.New("db gone")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusOf(tc.err), "err=%v", tc.err)
	}
}

func TestMessageOfHidesInternalCause(t *testing.T) {
	err := Internal(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "something went wrong", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "refused")
}

func TestWrappedErrorSurvivesFmtWrapping(t *testing.T) {
	inner := StaleToken()
	outer := fmt.Errorf("refresh failed: %w", inner)
	assert.Equal(t, KindStaleToken, KindOf(outer))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(outer))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindDuplicateEmail, "email already exists", cause)
	assert.True(t, errors.Is(err, cause))
}
