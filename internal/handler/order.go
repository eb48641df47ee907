package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/repository"
	"github.com/mhakbari/orderstack/internal/response"
)

// OrderHandler exposes the order CRUD endpoints.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(orders *repository.OrderRepo) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

type orderReq struct {
	Name string `json:"name" validate:"required"`
}

func mapOrderErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("order not found")
	}
	return apperr.Internal(err)
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}
	o, err := h.Orders.Create(c.Request().Context(), req.Name)
	if err != nil {
		return response.Error(c, apperr.Internal(err))
	}
	return response.OK(c, http.StatusCreated, "order created", o)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return response.Error(c, apperr.Internal(err))
	}
	return response.OK(c, http.StatusOK, "orders fetched", orders)
}

// Get handles GET /api/orders/:orderId.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return response.Error(c, err)
	}
	o, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, mapOrderErr(err))
	}
	return response.OK(c, http.StatusOK, "order fetched", o)
}

// Update handles PUT /api/orders/:orderId.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return response.Error(c, err)
	}
	var req orderReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}
	o, err := h.Orders.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return response.Error(c, mapOrderErr(err))
	}
	return response.OK(c, http.StatusOK, "order updated", o)
}

// Delete handles DELETE /api/orders/:orderId.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.Orders.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, mapOrderErr(err))
	}
	return response.OK(c, http.StatusOK, "order deleted", nil)
}
