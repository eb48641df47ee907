package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mhakbari/orderstack/internal/config"
)

// sendGridSender delivers through the SendGrid v3 API.
type sendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func newSendGridSender(cfg config.MailConfig) (*sendGridSender, error) {
	if cfg.APIKey == "" || cfg.From == "" {
		return nil, errors.New("sendgrid mail provider requires SENDGRID_API_KEY and MAIL_FROM")
	}
	return &sendGridSender{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (s *sendGridSender) Name() string { return "sendgrid" }

func (s *sendGridSender) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(s.fromName, s.from)
	to := sgmail.NewEmail("", msg.To)
	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	m := sgmail.NewSingleEmail(from, msg.Subject, to, text, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// Ping only checks that credentials are configured; SendGrid has no
// cheap connectivity probe that does not consume quota.
func (s *sendGridSender) Ping(_ context.Context) error {
	if s.client == nil || s.from == "" {
		return errors.New("sendgrid sender not configured")
	}
	return nil
}
