// Package middleware provides the request guards shared by protected
// routes: bearer-token authentication, role authorization, rate
// limiting and response caching.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/response"
	"github.com/mhakbari/orderstack/internal/utils"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxName   = "name"
	CtxEmail  = "email"
)

// JWTAuth returns middleware that verifies a Bearer access token and
// stores the decoded claims on the request context. The secret must be
// the access-token secret; refresh tokens never pass this gate. Block
// and password-change staleness are deliberately not re-checked here —
// only the refresh flow does that.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return response.Error(c, apperr.Unauthenticated("missing bearer token"))
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(raw, secret)
			if err != nil {
				return response.Error(c, err)
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxName, claims.Name)
			c.Set(CtxEmail, claims.Email)
			return next(c)
		}
	}
}
