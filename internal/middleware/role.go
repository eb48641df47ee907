package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/response"
)

// RequireRole enforces that the authenticated caller holds one of the
// given roles. It assumes JWTAuth already ran and stored the role on
// the context; a missing or unknown role is rejected.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(model.Role)
			if !ok || !role.Valid() || !allowed[role] {
				return response.Error(c, apperr.Forbidden("forbidden"))
			}
			return next(c)
		}
	}
}
