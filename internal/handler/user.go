package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/repository"
	"github.com/mhakbari/orderstack/internal/response"
)

// UserHandler exposes the admin user-management endpoints.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler { return &UserHandler{Users: users} }

type updateUserReq struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone"`
	Address model.Address `json:"address"`
}

func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	return apperr.Internal(err)
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return response.Error(c, apperr.Internal(err))
	}
	return response.OK(c, http.StatusOK, "users fetched", users)
}

// Get handles GET /api/users/:userId.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}
	u, err := h.Users.GetByID(c.Request().Context(), id, false)
	if err != nil {
		return response.Error(c, mapRepoErr(err))
	}
	return response.OK(c, http.StatusOK, "user fetched", u)
}

// Update handles PUT /api/users/:userId.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}
	u, err := h.Users.Update(c.Request().Context(), id, req.Name, req.Phone, req.Address)
	if err != nil {
		return response.Error(c, mapRepoErr(err))
	}
	return response.OK(c, http.StatusOK, "user updated", u)
}

// Delete handles DELETE /api/users/:userId.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, mapRepoErr(err))
	}
	return response.OK(c, http.StatusOK, "user deleted", nil)
}
