package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/mail"
	"github.com/mhakbari/orderstack/internal/response"
)

// MailHandler exposes admin endpoints for inspecting and exercising the
// mail pipeline.
type MailHandler struct {
	Sender mail.Sender
}

func NewMailHandler(sender mail.Sender) *MailHandler { return &MailHandler{Sender: sender} }

type sendTestReq struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Providers handles GET /api/mail/providers.
func (h *MailHandler) Providers(c echo.Context) error {
	return response.OK(c, http.StatusOK, "mail providers", map[string]interface{}{
		"active":    h.Sender.Name(),
		"providers": mail.Providers(),
	})
}

// TestConnection handles POST /api/mail/test-connection.
func (h *MailHandler) TestConnection(c echo.Context) error {
	if err := h.Sender.Ping(c.Request().Context()); err != nil {
		return response.Error(c, apperr.Wrap(apperr.KindInternal, "mail provider unreachable", err))
	}
	return response.OK(c, http.StatusOK, "mail provider reachable", map[string]string{
		"provider": h.Sender.Name(),
	})
}

// SendTest handles POST /api/mail/send-test.
func (h *MailHandler) SendTest(c echo.Context) error {
	var req sendTestReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperr.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}
	if req.Subject == "" {
		req.Subject = "Test email"
	}
	if req.Body == "" {
		req.Body = "<p>This is a test email.</p>"
	}
	msg := mail.Message{To: req.To, Subject: req.Subject, HTML: req.Body}
	if err := h.Sender.Send(c.Request().Context(), msg); err != nil {
		return response.Error(c, apperr.Wrap(apperr.KindInternal, "failed to send test email", err))
	}
	return response.OK(c, http.StatusOK, "test email sent", nil)
}
