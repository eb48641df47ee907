// Package handler holds the HTTP endpoints. Handlers bind and validate
// request bodies, delegate to services or repositories, and render the
// shared response envelope.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/middleware"
	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/response"
	"github.com/mhakbari/orderstack/internal/service"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	Auth *service.Auth
}

func NewAuthHandler(auth *service.Auth) *AuthHandler { return &AuthHandler{Auth: auth} }

// ----- DTOs -----

type registerReq struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6"`
	Phone    string        `json:"phone"`
	Role     string        `json:"role" validate:"omitempty,oneof=admin customer provider"`
	Address  model.Address `json:"address"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordReq struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	role := model.RoleCustomer
	if req.Role != "" {
		r, err := model.ParseRole(req.Role)
		if err != nil {
			return response.Error(c, apperr.Validation("invalid role"))
		}
		role = r
	}

	u, err := h.Auth.Register(c.Request().Context(), model.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     role,
		Address:  req.Address,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusCreated, "user registered successfully", u)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	pair, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, "login successful", pair)
}

// Refresh handles POST /api/auth/refresh-token. It returns a new access
// token only; the refresh token is not rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	access, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, "token refreshed", map[string]string{
		"accessToken": access,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	if err := h.Auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, "password reset link sent to your email", nil)
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	if err := h.Auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, "password reset successful", nil)
}

// ChangePassword handles POST /api/auth/change-password for the
// authenticated user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || userID == 0 {
		return response.Error(c, apperr.Unauthenticated("missing user identity"))
	}

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	if err := h.Auth.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, http.StatusOK, "password changed successfully", nil)
}
