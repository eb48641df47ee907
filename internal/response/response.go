// Package response renders the uniform API envelope used by every
// endpoint and translates application errors into it.
package response

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/logger"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:    true,
		Message:    message,
		StatusCode: status,
		Data:       data,
	})
}

// Error translates err through the apperr taxonomy and writes a failure
// envelope. Internal causes are logged here and never shown to clients.
func Error(c echo.Context, err error) error {
	status := apperr.StatusOf(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.Log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Request().Method),
			zap.Error(err))
	}
	return c.JSON(status, Envelope{
		Success:    false,
		Message:    apperr.MessageOf(err),
		StatusCode: status,
	})
}
