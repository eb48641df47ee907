package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/middleware"
	"github.com/mhakbari/orderstack/internal/response"
	"github.com/mhakbari/orderstack/internal/service"
)

// AdminHandler exposes the admin moderation endpoints.
type AdminHandler struct {
	Admin *service.Admin
}

func NewAdminHandler(admin *service.Admin) *AdminHandler { return &AdminHandler{Admin: admin} }

func (h *AdminHandler) setBlocked(c echo.Context, blocked bool, okMsg string) error {
	actorID, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || actorID == 0 {
		return response.Error(c, apperr.Unauthenticated("missing user identity"))
	}
	targetID, err := pathID(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.Admin.SetBlocked(c.Request().Context(), actorID, targetID, blocked); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, okMsg, nil)
}

// Block handles PATCH /api/admin/users/:userId/block.
func (h *AdminHandler) Block(c echo.Context) error {
	return h.setBlocked(c, true, "user blocked")
}

// Unblock handles PATCH /api/admin/users/:userId/unblock.
func (h *AdminHandler) Unblock(c echo.Context) error {
	return h.setBlocked(c, false, "user unblocked")
}
